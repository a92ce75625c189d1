package app

import (
	"fmt"
	"io"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

// Reporter writes human-readable scan lines. Console writes are assumed to
// succeed; there is no failure mode.
type Reporter struct {
	out io.Writer
}

func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

func (r *Reporter) LogScan(kind TargetKind, target string, percentage float64) {
	fmt.Fprintf(
		r.out,
		"[%s] %s scan %s: %.2f%% malicious\n",
		r.timestamp(),
		kind,
		target,
		percentage,
	)
}

func (r *Reporter) LogLocation(ip string, loc *Location) {
	fmt.Fprintf(
		r.out,
		"[%s] Location %s: %s, %s, %s (%.4f, %.4f) ISP: %s\n",
		r.timestamp(),
		ip,
		loc.City,
		loc.Region,
		loc.Country,
		loc.Lat,
		loc.Lon,
		loc.ISP,
	)
}

func (r *Reporter) LogFailure(kind TargetKind, target string) {
	fmt.Fprintf(
		r.out,
		"[%s] %s scan %s: scan failed\n",
		r.timestamp(),
		kind,
		target,
	)
}

func (r *Reporter) timestamp() string {
	return time.Now().Format(timestampLayout)
}
