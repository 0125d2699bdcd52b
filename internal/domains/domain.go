package domains

// Domain is a part of the application registered in application.App.
// All domains get their dependencies connected before any of them starts.
type Domain interface {
	ConnectDependencies() error
	Start() error
}
