package avalanche

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/xswap-network/xswap/pkg/avm"
	"github.com/xswap-network/xswap/pkg/circuitbreaker"
	"github.com/xswap-network/xswap/pkg/explorer"
	"github.com/xswap-network/xswap/pkg/httputil"
	"github.com/yiplee/go-cache"
	"go.uber.org/ratelimit"
)

const (
	xchainPath = "/ext/bc/X"
	infoPath   = "/ext/info"

	// DefaultRequestsPerSecond ...
	DefaultRequestsPerSecond = 10
)

var (
	// ErrNullURL ...
	ErrNullURL = errors.New("explorer url must not be null")
	// ErrUnavailable is returned when the node can't be reached or replies
	// with an unexpected status.
	ErrUnavailable = errors.New("explorer is unavailable")
)

// RPCError is the error object returned by the node.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Opts is the struct given to NewService.
type Opts struct {
	URL               string
	Network           avm.Network
	RequestsPerSecond int
	Timeout           time.Duration
	// Registerer, if not nil, is where the request metrics get registered.
	Registerer prometheus.Registerer
}

func (o Opts) validate() error {
	if len(o.URL) <= 0 {
		return ErrNullURL
	}
	if len(o.Network.Name) <= 0 {
		return fmt.Errorf("network must not be null")
	}
	if o.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second must not be negative")
	}
	return nil
}

type service struct {
	apiURL  string
	network avm.Network

	cb      *gobreaker.CircuitBreaker
	limiter ratelimit.Limiter
	assets  *cache.Cache[string, *explorer.AssetDescription]
	metrics *metrics

	reqID uint64
}

// NewService returns a new avalanche node client as an explorer.Service
// interface.
func NewService(opts Opts) (explorer.Service, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.RequestsPerSecond == 0 {
		opts.RequestsPerSecond = DefaultRequestsPerSecond
	}
	httputil.SetTimeout(opts.Timeout)

	m, err := newMetrics(opts.Registerer)
	if err != nil {
		return nil, err
	}

	return &service{
		apiURL:  strings.TrimSuffix(opts.URL, "/"),
		network: opts.Network,
		cb:      circuitbreaker.NewCircuitBreaker("explorer"),
		limiter: ratelimit.New(opts.RequestsPerSecond),
		assets:  cache.New[string, *explorer.AssetDescription](),
		metrics: m,
	}, nil
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      uint64      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// call performs a JSON-RPC request against the given endpoint path and
// unmarshals the result into res. Only transport failures count for the
// circuit breaker, rpc errors are returned as *RPCError.
func (s *service) call(
	ctx context.Context, path, method string, params, res interface{},
) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      atomic.AddUint64(&s.reqID, 1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return err
	}

	s.limiter.Take()
	start := time.Now()

	iResp, err := s.cb.Execute(func() (interface{}, error) {
		status, resp, err := httputil.NewHTTPRequest(
			ctx, http.MethodPost, s.apiURL+path, string(body),
			map[string]string{"Content-Type": "application/json"},
		)
		if err != nil {
			return nil, err
		}
		if status >= http.StatusInternalServerError {
			return nil, fmt.Errorf("status %d: %s", status, resp)
		}
		return resp, nil
	})
	s.metrics.observe(method, start, err)
	if err != nil {
		log.WithError(err).Debugf("explorer: %s failed", method)
		return fmt.Errorf("%w: %s: %s", ErrUnavailable, method, err)
	}

	resp := &rpcResponse{}
	if err := json.Unmarshal([]byte(iResp.(string)), resp); err != nil {
		return fmt.Errorf("%w: %s: invalid response: %s", ErrUnavailable, method, err)
	}
	if resp.Error != nil {
		return resp.Error
	}
	if res == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Result, res); err != nil {
		return fmt.Errorf("%w: %s: invalid result: %s", ErrUnavailable, method, err)
	}
	return nil
}

// jsonUint accepts both quoted and plain json numbers, the node encodes
// integers as strings.
type jsonUint uint64

func (u *jsonUint) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), "\"")
	v, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return err
	}
	*u = jsonUint(v)
	return nil
}
