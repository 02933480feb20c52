package diag

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	StatusRunning        = "Running"
	StatusNotAvailable   = "Not Available"
	StatusModuleNotFound = "Database module not found (set DB_URL to enable)"
	StatusNotInitialized = "Database available but not initialized"
	StatusAvailable      = "Available"
	StatusWorking        = "Connected & Working"
	StatusConfigured     = "Configured"
	StatusConnected      = "Connected"
	StatusNotConnected   = "Not Connected"
	StatusSet            = "Set"
	StatusNotSet         = "Not Set"

	// MaxCollections caps how many collection names are reported.
	MaxCollections = 10

	DefaultTimeout = 3 * time.Second
)

// Report is the JSON body of the diagnostics endpoint.
type Report struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      *string  `json:"database_url"`
	DatabaseName     *string  `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// Prober builds diagnostics reports against one Capability.
type Prober struct {
	capability Capability
	getenv     func(string) string
	timeout    time.Duration
	log        logrus.FieldLogger
}

// Option configures a Prober.
type Option func(*Prober)

// WithGetenv replaces os.Getenv for the DATABASE_URL/DATABASE_NAME checks.
func WithGetenv(fn func(string) string) Option {
	return func(p *Prober) { p.getenv = fn }
}

// WithTimeout bounds the collaborator round trip. Non-positive values
// keep the default.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithLogger sets the logger used for failed probes.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Prober) { p.log = l }
}

func NewProber(c Capability, opts ...Option) *Prober {
	p := &Prober{
		capability: c,
		getenv:     os.Getenv,
		timeout:    DefaultTimeout,
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe never fails. Every collaborator error ends up as a status string
// in the report.
func (p *Prober) Probe(ctx context.Context) Report {
	rep := Report{
		Backend:          StatusRunning,
		Database:         StatusNotAvailable,
		ConnectionStatus: StatusNotConnected,
		Collections:      []string{},
	}

	if err := p.inspect(ctx, &rep); err != nil {
		p.log.WithError(err).WithField("capability", p.capability.State().String()).
			Warn("database diagnostics failed")
		rep.Database = Describe(err)
	}

	// These always replace whatever inspect recorded.
	rep.DatabaseURL = envFlag(p.getenv, "DATABASE_URL")
	rep.DatabaseName = envFlag(p.getenv, "DATABASE_NAME")
	return rep
}

func (p *Prober) inspect(ctx context.Context, rep *Report) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	h, err := p.capability.Resolve()
	if err != nil {
		return err
	}
	if h == nil {
		return ErrNotInitialized
	}

	name := h.Name()
	if name == "" {
		name = StatusConnected
	}
	rep.Database = StatusAvailable
	rep.DatabaseURL = ptr(StatusConfigured)
	rep.DatabaseName = &name
	rep.ConnectionStatus = StatusConnected

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	names, err := listCollections(ctx, h)
	if err != nil {
		return &EnumerationError{Err: err}
	}
	if len(names) > MaxCollections {
		names = names[:MaxCollections]
	}
	rep.Collections = append([]string{}, names...)
	rep.Database = StatusWorking
	return nil
}

func listCollections(ctx context.Context, h Handle) (names []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return h.ListCollectionNames(ctx)
}

func envFlag(getenv func(string) string, key string) *string {
	if getenv(key) != "" {
		return ptr(StatusSet)
	}
	return ptr(StatusNotSet)
}

func ptr(s string) *string { return &s }
