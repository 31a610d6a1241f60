package fetcherimpl

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/nbcommunication/instagram-media-display/internal/cache"
	"github.com/nbcommunication/instagram-media-display/internal/fetcher"
	"github.com/nbcommunication/instagram-media-display/internal/graph"
	"github.com/nbcommunication/instagram-media-display/internal/notifier"
	"github.com/nbcommunication/instagram-media-display/internal/ratelimit"
	"github.com/nbcommunication/instagram-media-display/pkg/config"
	apperrors "github.com/nbcommunication/instagram-media-display/pkg/errors"
	"github.com/nbcommunication/instagram-media-display/pkg/logger"
	"go.uber.org/fx"
)

const (
	requestTimeout = 30 * time.Second

	// Requested TTLs at or above this cap fall back to the default, so a
	// misconfigured caller cannot pin a pathologically stale entry.
	maxCacheTTL = 7 * 24 * time.Hour

	// notifyGateKey gates the operator alert to once per day.
	notifyGateKey = "notify:oauth"
	notifyGateTTL = 24 * time.Hour
)

type Opts struct {
	fx.In

	Config   *config.Config
	Logger   logger.Logger
	Cache    cache.Cache
	Notifier notifier.Client
}

type FetcherImpl struct {
	http       *resty.Client
	baseURL    string
	defaultTTL time.Duration
	cache      cache.Cache
	logger     logger.Logger
	notifier   notifier.Client
	limiter    ratelimit.Limiter
}

func New(opts Opts) *FetcherImpl {
	return &FetcherImpl{
		http:       resty.New().SetTimeout(requestTimeout),
		baseURL:    strings.TrimSuffix(opts.Config.Instagram.BaseURL, "/"),
		defaultTTL: opts.Config.Instagram.CacheTTL,
		cache:      opts.Cache,
		logger:     opts.Logger,
		notifier:   opts.Notifier,
		limiter:    ratelimit.NewKeyedLimiter(1, time.Second, 5),
	}
}

var _ fetcher.Client = (*FetcherImpl)(nil)

func (f *FetcherImpl) Fetch(ctx context.Context, endpoint string, params url.Values, opts ...fetcher.RequestOption) (json.RawMessage, error) {
	req := fetcher.NewRequest(opts...)

	u := endpoint
	if !strings.Contains(endpoint, "://") {
		u = f.baseURL + "/" + endpoint
	}

	if !req.UseCache {
		return f.do(ctx, u, params, req.User)
	}

	key := f.cacheKey(u, params, req.User)
	if body, ok := f.cache.Get(ctx, key); ok {
		return body, nil
	}

	body, err := f.do(ctx, u, params, req.User)
	if err != nil {
		return nil, err
	}

	f.cache.Set(ctx, key, body, f.resolveTTL(req))
	return body, nil
}

// cacheKey builds the key from the endpoint with the base URL stripped,
// plus the page size and the account it was requested for.
func (f *FetcherImpl) cacheKey(u string, params url.Values, user string) string {
	name := strings.TrimPrefix(u, f.baseURL)
	if limit := params.Get("limit"); limit != "" {
		name += limit
	}
	if user != "" {
		name += user
	}
	sum := md5.Sum([]byte(name))
	return hex.EncodeToString(sum[:])
}

func (f *FetcherImpl) resolveTTL(req fetcher.Request) time.Duration {
	ttl := req.TTL
	if ttl <= 0 || ttl >= maxCacheTTL {
		ttl = f.defaultTTL
	}
	return ttl
}

func (f *FetcherImpl) do(ctx context.Context, u string, params url.Values, user string) (json.RawMessage, error) {
	if user != "" {
		if err := f.limiter.Wait(ctx, user); err != nil {
			return nil, apperrors.Wrap(err, "rate limit wait aborted")
		}
	}

	r := f.http.R().SetContext(ctx)
	if params != nil {
		r.SetQueryParamsFromValues(params)
	}

	resp, err := r.Get(u)
	if err != nil {
		f.logger.Error("API request failed",
			"endpoint", u,
			"error", err,
		)
		return nil, apperrors.Join(apperrors.ErrRemoteRequest, err)
	}

	body := resp.Body()

	var probe graph.ErrorResponse
	if err := json.Unmarshal(body, &probe); err != nil {
		f.logger.Error("API request returned malformed body",
			"endpoint", u,
			"status", resp.StatusCode(),
			"response", string(body),
		)
		return nil, apperrors.Join(apperrors.ErrRemoteRequest, err)
	}

	if probe.Error != nil {
		f.logger.Error("API request failed",
			"endpoint", u,
			"params", safeParams(params),
			"status", resp.StatusCode(),
			"response", string(body),
		)
		if probe.Error.IsOAuth() {
			f.notifyAuthError(ctx, body)
		}
		return nil, apperrors.Join(apperrors.ErrRemoteAPI, probe.Error)
	}

	if resp.StatusCode() >= 400 {
		f.logger.Error("API request failed",
			"endpoint", u,
			"params", safeParams(params),
			"status", resp.StatusCode(),
			"response", string(body),
		)
		return nil, apperrors.WrapWithCode(apperrors.ErrRemoteRequest, "http", resp.Status())
	}

	return body, nil
}

// notifyAuthError alerts the operator, at most once per gate window no
// matter how many calls keep failing with the same authorisation error.
func (f *FetcherImpl) notifyAuthError(ctx context.Context, body []byte) {
	if _, ok := f.cache.Get(ctx, notifyGateKey); ok {
		return
	}
	f.cache.Set(ctx, notifyGateKey, []byte("1"), notifyGateTTL)

	if err := f.notifier.NotifyAuthError(ctx, string(body)); err != nil {
		f.logger.Error("Failed to notify operator", "error", err)
	}
}

// safeParams renders the request params for logging with the access token
// redacted.
func safeParams(params url.Values) string {
	if params == nil {
		return ""
	}
	clone := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			if k == "access_token" {
				v = "[redacted]"
			}
			clone.Add(k, v)
		}
	}
	return clone.Encode()
}
