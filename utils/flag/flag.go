package flag

import "flag"

var (
	// ServiceName tags log lines so that multiple services sharing one log
	// sink stay distinguishable.
	ServiceName = flag.String("service", "cultfilm_backend", "name of the running service")

	// NoAuth disables the session middleware for local development.
	NoAuth = flag.Bool("no_auth", false, "skip session resolution, for local development only")
)

func ParseFlags() {
	flag.Parse()
}
