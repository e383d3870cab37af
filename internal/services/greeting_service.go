package services

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"kaya/internal/logger"
)

// GreetingServiceName is the registry name of the greeting service.
const GreetingServiceName = "greeting"

// GreetingService builds the boot greeting from the time of day.
type GreetingService struct {
	timezone string
	name     string
	clock    func() time.Time
	location *time.Location
}

// GreetingOption configures a GreetingService.
type GreetingOption func(*GreetingService)

// WithClock overrides time.Now.
func WithClock(clock func() time.Time) GreetingOption {
	return func(g *GreetingService) {
		g.clock = clock
	}
}

// NewGreetingService creates a greeting service for the IANA timezone tz.
// name is appended to the greeting when non-empty.
func NewGreetingService(tz, name string, opts ...GreetingOption) *GreetingService {
	g := &GreetingService{
		timezone: tz,
		name:     name,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name returns the service name.
func (g *GreetingService) Name() string {
	return GreetingServiceName
}

// Initialize resolves the timezone. Unknown zones fall back to local time.
func (g *GreetingService) Initialize() error {
	g.location = time.Local
	if g.timezone == "" {
		return nil
	}
	loc, err := time.LoadLocation(g.timezone)
	if err != nil {
		logger.Warn("Unknown greeting timezone, using local time", "timezone", g.timezone, "error", err)
		return nil
	}
	g.location = loc
	return nil
}

// Greeting returns e.g. "Good evening, Ada."
func (g *GreetingService) Greeting() string {
	loc := g.location
	if loc == nil {
		loc = time.Local
	}
	text := PartOfDay(g.clock().In(loc).Hour())
	if g.name != "" {
		text = fmt.Sprintf("%s, %s", text, g.name)
	}
	return text + "."
}

// PartOfDay maps an hour (0-23) to its greeting: 05-12 morning, 12-17
// afternoon, 17-22 evening, otherwise night.
func PartOfDay(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Good morning"
	case hour >= 12 && hour < 17:
		return "Good afternoon"
	case hour >= 17 && hour < 22:
		return "Good evening"
	default:
		return "Good night"
	}
}
