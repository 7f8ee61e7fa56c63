package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/sony/gobreaker"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"topicscope/internal/resilience/circuitbreaker"
)

// GRPCProvider calls an external embedding service over gRPC. The request/response
// envelope is a generic structpb.Struct rather than a service-specific generated
// message: the embedding provider is an out-of-scope external collaborator (spec §1,
// §4.13) described only as an interface the core calls, so the wire contract here is
// deliberately minimal — {"text": "..."} in, {"vector": [...]} out — instead of
// depending on a sibling service's protobuf schema this repository does not own.
type GRPCProvider struct {
	conn           *grpc.ClientConn
	method         string
	circuitBreaker *circuitbreaker.CircuitBreaker
	timeout        time.Duration
	logger         *slog.Logger
}

// NewGRPCProvider dials addr (insecure, matching the teacher's internal-network
// embedding sidecar pattern) and wraps calls in the shared circuit breaker config.
func NewGRPCProvider(addr string, logger *slog.Logger) (*GRPCProvider, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial embedding service: %w", err)
	}
	return &GRPCProvider{
		conn:           conn,
		method:         "/topicscope.embedding.Embedder/Embed",
		circuitBreaker: circuitbreaker.New(circuitbreaker.Config{Name: "embedding-grpc", MaxRequests: 3, Interval: 30 * time.Second, Timeout: 60 * time.Second, FailureThreshold: 0.6, MinRequests: 5}),
		timeout:        3 * time.Second,
		logger:         logger,
	}, nil
}

// Embed sends text to the external embedding service and decodes the returned vector.
// Any failure — dial, timeout, circuit open, malformed response — degrades to a zero
// vector rather than propagating an error, preserving the ranker's keyword-only
// fallback contract (spec §4.5).
func (p *GRPCProvider) Embed(ctx context.Context, text string) (pgvector.Vector, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := structpb.NewStruct(map[string]any{"text": text})
	if err != nil {
		return pgvector.Vector{}, err
	}

	result, err := p.circuitBreaker.Execute(func() (interface{}, error) {
		resp := &structpb.Struct{}
		if err := p.conn.Invoke(ctx, p.method, req, resp); err != nil {
			return nil, err
		}
		return resp, nil
	})
	if err != nil {
		if err == gobreaker.ErrOpenState {
			p.logger.Warn("embedding circuit breaker open", slog.String("state", p.circuitBreaker.State().String()))
		}
		return pgvector.Vector{}, nil
	}

	resp := result.(*structpb.Struct)
	vals := resp.Fields["vector"].GetListValue()
	if vals == nil {
		return pgvector.Vector{}, nil
	}
	vec := make([]float32, 0, len(vals.Values))
	for _, v := range vals.Values {
		vec = append(vec, float32(v.GetNumberValue()))
	}
	return pgvector.NewVector(vec), nil
}

// Close releases the underlying gRPC connection.
func (p *GRPCProvider) Close() error {
	return p.conn.Close()
}
