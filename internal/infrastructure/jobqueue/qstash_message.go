package jobqueue

import (
	"strconv"
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

const maxLoggedBody = 4096

type header struct {
	name, value string
	secret      bool
}

// message is one QStash publish call. Its headers feed both the request and
// the curl preview attached to spans, where secrets are masked.
type message struct {
	publishURL string
	targetURL  string
	path       string
	body       []byte
	headers    []header
}

func (p *QStashPublisher) newMessage(path string, body []byte, delay time.Duration, dedupID string) message {
	target := p.targetBaseURL + path
	m := message{
		publishURL: p.baseURL + "/v2/publish/" + target,
		targetURL:  target,
		path:       path,
		body:       body,
		headers: []header{
			{name: "Authorization", value: "Bearer " + p.token, secret: true},
			{name: "Content-Type", value: "application/json"},
			{name: "Upstash-Method", value: fasthttp.MethodPost},
		},
	}
	if p.retries > 0 {
		m.headers = append(m.headers, header{name: "Upstash-Retries", value: strconv.Itoa(p.retries)})
	}
	if d := delaySeconds(delay); d != "" {
		m.headers = append(m.headers, header{name: "Upstash-Delay", value: d})
	}
	if dedupID != "" {
		m.headers = append(m.headers, header{name: "Upstash-Deduplication-Id", value: dedupID})
	}
	if p.internalJobToken != "" {
		// QStash strips the prefix and forwards the header to the callback.
		m.headers = append(m.headers, header{name: "Upstash-Forward-X-Internal-Job-Token", value: p.internalJobToken, secret: true})
	}
	return m
}

func (m message) header(name string) string {
	for _, h := range m.headers {
		if h.name == name {
			return h.value
		}
	}
	return ""
}

func (m message) writeTo(req *fasthttp.Request) {
	req.SetRequestURI(m.publishURL)
	// The target URL is embedded in the path and its "//" must survive.
	req.URI().DisablePathNormalizing = true
	req.Header.SetMethod(fasthttp.MethodPost)
	for _, h := range m.headers {
		req.Header.Set(h.name, h.value)
	}
	req.SetBody(m.body)
}

// curl renders the call as a shell command for debugging.
func (m message) curl() string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("curl -X POST ")
	_, _ = buf.WriteString(shellQuote(m.publishURL))
	for _, h := range m.headers {
		value := h.value
		if h.secret {
			value = maskSecret(h.name, value)
		}
		_, _ = buf.WriteString(" -H ")
		_, _ = buf.WriteString(shellQuote(h.name + ": " + value))
	}
	_, _ = buf.WriteString(" -d ")
	_, _ = buf.WriteString(shellQuote(truncate(string(m.body), maxLoggedBody)))
	return buf.String()
}

func maskSecret(name, value string) string {
	if scheme, _, ok := strings.Cut(value, " "); ok && name == "Authorization" {
		return scheme + " ***"
	}
	return "***"
}

// delaySeconds renders a positive delay as whole seconds; zero means none.
func delaySeconds(delay time.Duration) string {
	secs := int64(delay.Round(time.Second) / time.Second)
	if secs <= 0 {
		return ""
	}
	return strconv.FormatInt(secs, 10) + "s"
}

func shellQuote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", `'"'"'`) + "'"
}

func truncate(v string, max int) string {
	if len(v) <= max {
		return v
	}
	return v[:max] + "...(truncated)"
}
