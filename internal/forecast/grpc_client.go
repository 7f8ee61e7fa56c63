package forecast

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"topicscope/internal/resilience/circuitbreaker"
)

// GRPCClient calls an external forecasting service over gRPC, the same generic
// structpb envelope internal/embedding's GRPCProvider uses: the forecaster is an
// out-of-scope external collaborator (spec §1, §4.13) described only as an interface
// the core calls, so the wire contract here — {"series": [...], "horizon_days": N} in,
// {"historical": [...], "forecast": [...], "stats": {...}} out — is deliberately
// minimal rather than depending on a sibling service's protobuf schema this
// repository does not own.
type GRPCClient struct {
	conn           *grpc.ClientConn
	method         string
	circuitBreaker *circuitbreaker.CircuitBreaker
	timeout        time.Duration
	logger         *slog.Logger
}

// NewGRPCClient dials addr (insecure, matching the teacher's internal-network sidecar
// pattern) and wraps calls in the shared circuit breaker config.
func NewGRPCClient(addr string, logger *slog.Logger) (*GRPCClient, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial forecast service: %w", err)
	}
	return &GRPCClient{
		conn:           conn,
		method:         "/topicscope.forecast.Forecaster/Forecast",
		circuitBreaker: circuitbreaker.New(circuitbreaker.Config{Name: "forecast-grpc", MaxRequests: 3, Interval: 30 * time.Second, Timeout: 60 * time.Second, FailureThreshold: 0.6, MinRequests: 5}),
		timeout:        10 * time.Second,
		logger:         logger,
	}, nil
}

// Forecast sends the cleaned series to the external forecaster. Any failure — dial,
// timeout, circuit open, malformed response — degrades to returning the historical
// series back with no forecast/stats rather than propagating an error, so a
// forecaster outage never turns into a fabricated trend upstream.
func (c *GRPCClient) Forecast(ctx context.Context, series []Point, horizonDays int) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := structpb.NewStruct(map[string]any{
		"series":       seriesToStructValues(series),
		"horizon_days": float64(horizonDays),
	})
	if err != nil {
		return Result{Historical: series}, nil
	}

	result, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		resp := &structpb.Struct{}
		if err := c.conn.Invoke(ctx, c.method, req, resp); err != nil {
			return nil, err
		}
		return resp, nil
	})
	if err != nil {
		if err == gobreaker.ErrOpenState {
			c.logger.Warn("forecast circuit breaker open", slog.String("state", c.circuitBreaker.State().String()))
		}
		return Result{Historical: series}, nil
	}

	resp := result.(*structpb.Struct)
	return Result{
		Historical: structValuesToSeries(resp.Fields["historical"]),
		Forecast:   structValuesToSeries(resp.Fields["forecast"]),
		Stats:      structToStats(resp.Fields["stats"]),
	}, nil
}

// Close releases the underlying gRPC connection.
func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func seriesToStructValues(series []Point) []any {
	out := make([]any, len(series))
	for i, p := range series {
		out[i] = map[string]any{"date": p.Date, "count": p.Count}
	}
	return out
}

func structValuesToSeries(v *structpb.Value) []Point {
	list := v.GetListValue()
	if list == nil {
		return nil
	}
	out := make([]Point, 0, len(list.Values))
	for _, item := range list.Values {
		m := item.GetStructValue()
		if m == nil {
			continue
		}
		out = append(out, Point{
			Date:  m.Fields["date"].GetStringValue(),
			Count: m.Fields["count"].GetNumberValue(),
		})
	}
	return out
}

func structToStats(v *structpb.Value) Stats {
	m := v.GetStructValue()
	if m == nil {
		return Stats{}
	}
	out := make(Stats, len(m.Fields))
	for k, val := range m.Fields {
		out[k] = val.GetNumberValue()
	}
	return out
}
