// Package worldclock resolves the current time in other time zones.
//
// Offsets come from a remote time API. When the API is unreachable the
// host time zone database is used, and failing that, local time.
package worldclock

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fakeyudi/tempo/internal/clock"
)

// DefaultBaseURL is the worldtimeapi.org timezone endpoint.
const DefaultBaseURL = "https://worldtimeapi.org/api/timezone"

// DefaultZones are offered when no zones are configured.
var DefaultZones = []string{
	"America/New_York",
	"Europe/London",
	"Asia/Kolkata",
	"Asia/Tokyo",
	"Australia/Sydney",
}

// Source records where a zone's offset came from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceHost   Source = "host"
	SourceLocal  Source = "local"
)

// Zone is a resolved time zone. Now is derived from the resolution anchor,
// so a Zone stays accurate without re-fetching.
type Zone struct {
	Name   string
	Offset time.Duration
	Source Source
	// Err is the remote failure that caused a fallback, if any.
	Err error

	skew time.Duration // remote clock minus local clock at resolution
	loc  *time.Location
}

// Now returns the zone's wall-clock time corresponding to local instant t.
func (z Zone) Now(t time.Time) time.Time {
	t = t.Add(z.skew)
	if z.loc != nil {
		return t.In(z.loc)
	}
	return t.In(time.FixedZone(z.Name, int(z.Offset/time.Second)))
}

// Label is the short display name: "America/New_York" -> "New York".
func (z Zone) Label() string {
	return DisplayName(z.Name)
}

// DisplayName turns an IANA name into a short label.
func DisplayName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.ReplaceAll(name, "_", " ")
}

// Client resolves zones.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Clock   clock.Clock
}

// NewClient returns a Client for baseURL with a short request timeout.
func NewClient(baseURL string, c clock.Clock) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if c == nil {
		c = clock.Real{}
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 5 * time.Second},
		Clock:   c,
	}
}

type apiResponse struct {
	UTCOffset string `json:"utc_offset"`
	Datetime  string `json:"datetime"`
}

// Resolve never fails: when the remote lookup errors the returned Zone
// carries the error in Err and a fallback offset.
func (c *Client) Resolve(ctx context.Context, name string) Zone {
	z, err := c.fetch(ctx, name)
	if err == nil {
		return z
	}
	return fallback(name, c.Clock.Now(), err)
}

func (c *Client) fetch(ctx context.Context, name string) (Zone, error) {
	p, err := zonePath(name)
	if err != nil {
		return Zone{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/"+p, nil)
	if err != nil {
		return Zone{}, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Zone{}, fmt.Errorf("fetch %s: %w", name, err)
	}
	defer resp.Body.Close()
	received := c.Clock.Now()

	if resp.StatusCode != http.StatusOK {
		return Zone{}, fmt.Errorf("fetch %s: HTTP status %d", name, resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Zone{}, fmt.Errorf("decode %s: %w", name, err)
	}
	offset, err := ParseOffset(body.UTCOffset)
	if err != nil {
		return Zone{}, fmt.Errorf("decode %s: %w", name, err)
	}

	z := Zone{Name: name, Offset: offset, Source: SourceRemote}
	if remote, err := time.Parse(time.RFC3339Nano, body.Datetime); err == nil {
		z.skew = remote.Sub(received)
	}
	return z, nil
}

// zonePath escapes each segment of an IANA name for use in a URL path.
func zonePath(name string) (string, error) {
	segments := strings.Split(name, "/")
	for i, seg := range segments {
		if seg == "" || seg == "." || seg == ".." {
			return "", fmt.Errorf("invalid zone name %q", name)
		}
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/"), nil
}

func fallback(name string, now time.Time, cause error) Zone {
	if loc, err := time.LoadLocation(name); err == nil {
		_, secs := now.In(loc).Zone()
		return Zone{Name: name, Offset: time.Duration(secs) * time.Second, Source: SourceHost, Err: cause, loc: loc}
	}
	_, secs := now.Zone()
	return Zone{Name: name, Offset: time.Duration(secs) * time.Second, Source: SourceLocal, Err: cause, loc: time.Local}
}

// ParseOffset parses a UTC offset such as "+05:30", "-08:00" or "Z".
func ParseOffset(s string) (time.Duration, error) {
	if s == "Z" {
		return 0, nil
	}
	if len(s) < 2 || (s[0] != '+' && s[0] != '-') {
		return 0, fmt.Errorf("invalid utc offset %q", s)
	}
	sign := time.Duration(1)
	if s[0] == '-' {
		sign = -1
	}
	hh, mm, ok := strings.Cut(s[1:], ":")
	if !ok {
		mm = "0"
	}
	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || hours > 14 {
		return 0, fmt.Errorf("invalid utc offset %q", s)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid utc offset %q", s)
	}
	return sign * (time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute), nil
}

// Format renders t as HH:MM:SS.
func Format(t time.Time) string {
	return t.Format("15:04:05")
}
