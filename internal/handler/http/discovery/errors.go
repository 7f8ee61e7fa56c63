package discovery

import "errors"

var (
	errLangRequired  = errors.New("lang query parameter required")
	errQueryRequired = errors.New("q query parameter required")
	errTopicRequired = errors.New("topic field required")
)
