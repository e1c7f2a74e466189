// Package breach checks secrets against a breached-password corpus using
// k-anonymity range queries: only the first five hex characters of the
// secret's SHA-1 digest ever leave the process.
package breach

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/zarlcorp/core/pkg/zcrypto"
)

const (
	// DefaultBaseURL is the public Pwned Passwords range API.
	DefaultBaseURL = "https://api.pwnedpasswords.com"

	// DefaultTimeout bounds a single range query.
	DefaultTimeout = 10 * time.Second

	// PrefixLen is the number of hex characters sent to the corpus.
	PrefixLen = 5

	hashLen = sha1.Size * 2

	// maxBody caps how much of a range response is read.
	maxBody = 4 << 20

	// maxLine is the longest response line parsed; longer lines are skipped.
	maxLine = 1024
)

// Config configures a Client.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	Padding   bool   // ask the corpus to pad responses with zero-count entries
	UserAgent string // sent on every request
	Logger    *slog.Logger
}

// Result is the outcome of a breach check.
type Result struct {
	Found bool `json:"found"`
	Count int  `json:"count"`
}

// Pair is one SUFFIX:COUNT entry of a range response.
type Pair struct {
	Suffix string
	Count  int
}

// Client queries a k-anonymity range endpoint.
type Client struct {
	baseURL   string
	padding   bool
	userAgent string
	log       *slog.Logger
	http      *http.Client
}

// NewClient creates a client. Zero config fields take defaults.
func NewClient(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "zaudit"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:   base,
		padding:   cfg.Padding,
		userAgent: ua,
		log:       logger,
		http:      &http.Client{Timeout: timeout},
	}
}

// Check reports whether secret appears in the corpus and how often.
// It issues exactly one request and never retries.
func (c *Client) Check(ctx context.Context, secret string) (Result, error) {
	prefix, suffix := Split(Hash(secret))

	pairs, err := c.Range(ctx, prefix)
	if err != nil {
		return Result{}, fmt.Errorf("breach check: %w", err)
	}

	return Resolve(pairs, suffix), nil
}

// Range returns every suffix the corpus holds for a five character hex prefix.
func (c *Client) Range(ctx context.Context, prefix string) ([]Pair, error) {
	if !validPrefix(prefix) {
		return nil, fmt.Errorf("range: invalid prefix %q", prefix)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/range/"+prefix, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.padding {
		req.Header.Set("Add-Padding", "true")
	}

	c.log.Debug("breach range query", "prefix", prefix)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return nil, &NetworkError{StatusCode: resp.StatusCode}
	}

	pairs, skipped, err := parseBody(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		var perr *ProtocolError
		if errors.As(err, &perr) {
			return nil, err
		}
		return nil, &NetworkError{Err: fmt.Errorf("read response: %w", err)}
	}
	if skipped > 0 {
		c.log.Warn("breach range: skipped malformed lines", "prefix", prefix, "skipped", skipped)
	}

	return pairs, nil
}

// Hash returns the uppercase hex SHA-1 of secret. The byte copy of the
// secret is erased before returning.
func Hash(secret string) string {
	b := []byte(secret)
	sum := sha1.Sum(b)
	zcrypto.Erase(b)
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// Split divides a full hex digest into the transmitted prefix and the
// locally kept suffix.
func Split(hash string) (prefix, suffix string) {
	if len(hash) < PrefixLen {
		return hash, ""
	}
	return hash[:PrefixLen], hash[PrefixLen:]
}

// Resolve finds suffix among pairs. Comparison is exact and case-sensitive.
// A zero-count match is padding and resolves to not found.
func Resolve(pairs []Pair, suffix string) Result {
	for _, p := range pairs {
		if p.Suffix == suffix {
			return Result{Found: p.Count > 0, Count: p.Count}
		}
	}
	return Result{}
}

// ParseLine parses one SUFFIX:COUNT line. ok is false when the line is
// malformed and should be skipped.
func ParseLine(line string) (p Pair, ok bool) {
	suffix, count, found := strings.Cut(strings.TrimSpace(line), ":")
	if !found || len(suffix) != hashLen-PrefixLen || !isHex(suffix) {
		return Pair{}, false
	}

	n, err := strconv.Atoi(strings.TrimSpace(count))
	if err != nil || n < 0 {
		return Pair{}, false
	}

	return Pair{Suffix: suffix, Count: n}, true
}

// parseBody accumulates well-formed pairs and counts skipped lines. Lines
// longer than maxLine are skipped whole. When there were lines to parse but
// none parsed it fails with a ProtocolError.
func parseBody(r io.Reader) ([]Pair, int, error) {
	var (
		pairs   []Pair
		lines   int
		skipped int
	)

	br := bufio.NewReaderSize(r, maxLine)
	for {
		line, more, err := br.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, skipped, err
		}

		if more {
			// overlong: drop the remaining fragments of this line
			for more && err == nil {
				_, more, err = br.ReadLine()
			}
			if err != nil && err != io.EOF {
				return nil, skipped, err
			}
			lines++
			skipped++
			continue
		}

		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		lines++

		p, ok := ParseLine(string(line))
		if !ok {
			skipped++
			continue
		}
		pairs = append(pairs, p)
	}

	if lines > 0 && len(pairs) == 0 {
		return nil, skipped, &ProtocolError{Lines: lines}
	}

	return pairs, skipped, nil
}

func validPrefix(s string) bool {
	return len(s) == PrefixLen && isHex(s)
}

// isHex reports whether s is non-empty uppercase hex.
func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'A' || r > 'F') {
			return false
		}
	}
	return true
}
