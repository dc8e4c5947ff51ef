package jobqueue

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/golf-tournament/internal/platform/logging"
	"github.com/riskibarqy/golf-tournament/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var errPublishRejected = crerr.New("qstash rejected publish")

type QStashPublisherConfig struct {
	BaseURL          string
	Token            string
	TargetBaseURL    string
	Retries          int
	InternalJobToken string
	Timeout          time.Duration
	CircuitBreaker   resilience.CircuitBreakerConfig
}

// QStashPublisher delivers async jobs through the Upstash QStash publish API.
type QStashPublisher struct {
	client           *http.Client
	baseURL          string
	token            string
	targetBaseURL    string
	retries          int
	internalJobToken string
	breaker          *resilience.CircuitBreaker
	logger           *logging.Logger
}

func NewQStashPublisher(cfg QStashPublisherConfig, logger *logging.Logger) *QStashPublisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	onBreakerChange := func(name string, from, to resilience.CircuitState) {
		logger.Warn("circuit breaker state changed", "circuit", name, "from", from, "to", to)
	}

	return &QStashPublisher{
		client:           &http.Client{Timeout: timeout},
		baseURL:          strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:            strings.TrimSpace(cfg.Token),
		targetBaseURL:    strings.TrimRight(strings.TrimSpace(cfg.TargetBaseURL), "/"),
		retries:          cfg.Retries,
		internalJobToken: strings.TrimSpace(cfg.InternalJobToken),
		breaker:          resilience.FromConfig(cfg.CircuitBreaker.Named("qstash", onBreakerChange)),
		logger:           logger,
	}
}

func (p *QStashPublisher) Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error {
	path = "/" + strings.TrimLeft(strings.TrimSpace(path), "/")
	if path == "/" {
		return crerr.New("job path is required")
	}

	baseURL, err := validateHTTPBaseURL(p.baseURL)
	if err != nil {
		return crerr.Wrap(err, "invalid QSTASH_BASE_URL")
	}
	targetBaseURL, err := validateHTTPBaseURL(p.targetBaseURL)
	if err != nil {
		return crerr.Wrap(err, "invalid QSTASH_TARGET_BASE_URL")
	}

	if payload == nil {
		payload = map[string]any{}
	}
	body, err := sonic.Marshal(payload)
	if err != nil {
		return crerr.Wrap(err, "marshal job payload")
	}

	job := publishRequest{
		publishURL:      baseURL + "/v2/publish/" + targetBaseURL + path,
		targetURL:       targetBaseURL + path,
		path:            path,
		delay:           normalizeDelay(delay),
		retries:         p.retries,
		deduplicationID: strings.TrimSpace(deduplicationID),
		body:            body,
		forwardToken:    p.internalJobToken != "",
	}
	preview := job.curlPreview()

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("qstash.publish_url", job.publishURL),
			attribute.String("qstash.target_url", job.targetURL),
			attribute.String("qstash.deduplication_id", job.deduplicationID),
			attribute.String("qstash.request_curl_preview", preview),
		)
	}
	p.logger.DebugContext(ctx, "qstash publish request", "path", path, "target_url", job.targetURL, "curl_preview", preview)

	err = p.breaker.Do(func() error {
		return p.publish(ctx, job)
	}, func(err error) bool {
		return !crerr.Is(err, errPublishRejected)
	})
	if err != nil {
		return crerr.Wrapf(err, "publish qstash job target_url=%s", job.targetURL)
	}

	p.logger.InfoContext(ctx, "qstash job published", "path", path, "delay", job.delay, "deduplication_id", job.deduplicationID)
	return nil
}

func (p *QStashPublisher) publish(ctx context.Context, job publishRequest) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, job.publishURL, bytes.NewReader(job.body))
	if err != nil {
		return crerr.Wrap(err, "create qstash request")
	}
	for _, h := range job.headers(p.token, p.internalJobToken) {
		req.Header.Set(h.name, h.value)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 == 2 {
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	err = crerr.Newf("status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
	if resp.StatusCode/100 == 4 && resp.StatusCode != http.StatusTooManyRequests {
		return crerr.Mark(err, errPublishRejected)
	}
	return err
}

type publishRequest struct {
	publishURL      string
	targetURL       string
	path            string
	delay           string
	retries         int
	deduplicationID string
	body            []byte
	forwardToken    bool
}

type publishHeader struct {
	name   string
	value  string
	secret bool
}

// headers lists the QStash control headers for this job. Optional headers are omitted
// when unset.
func (r publishRequest) headers(token, internalJobToken string) []publishHeader {
	out := []publishHeader{
		{name: "Authorization", value: "Bearer " + token, secret: true},
		{name: "Content-Type", value: "application/json"},
		{name: "Upstash-Method", value: http.MethodPost},
	}
	if r.retries > 0 {
		out = append(out, publishHeader{name: "Upstash-Retries", value: strconv.Itoa(r.retries)})
	}
	if r.delay != "" && r.delay != "0s" {
		out = append(out, publishHeader{name: "Upstash-Delay", value: r.delay})
	}
	if r.deduplicationID != "" {
		out = append(out, publishHeader{name: "Upstash-Deduplication-Id", value: r.deduplicationID})
	}
	if r.forwardToken {
		out = append(out, publishHeader{name: "Upstash-Forward-X-Internal-Job-Token", value: internalJobToken, secret: true})
	}
	return out
}

// curlPreview renders the request as a shell command with secrets masked.
func (r publishRequest) curlPreview() string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("curl -X POST ")
	_, _ = buf.WriteString(shellQuote(r.publishURL))
	for _, h := range r.headers("", "") {
		value := h.value
		if h.secret {
			value = "***"
			if h.name == "Authorization" {
				value = "Bearer ***"
			}
		}
		_, _ = buf.WriteString(" -H ")
		_, _ = buf.WriteString(shellQuote(h.name + ": " + value))
	}
	_, _ = buf.WriteString(" -d ")
	_, _ = buf.WriteString(shellQuote(truncateForLog(string(r.body), 4096)))
	_, _ = buf.WriteString(" # ")
	_, _ = buf.WriteString(shellQuote("path=" + r.path))
	return buf.String()
}

func normalizeDelay(delay time.Duration) string {
	if delay <= 0 {
		return "0s"
	}
	return fmt.Sprintf("%ds", int(delay.Round(time.Second).Seconds()))
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}
	return strings.TrimRight(candidate, "/"), nil
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'"'"'`) + "'"
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}
