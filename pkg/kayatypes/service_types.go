package kayatypes

// Service is a named component initialized once at host startup.
type Service interface {
	Name() string
	Initialize() error
}
