// Package sources holds the static registry of hostnames probed during a
// preflight run, grouped by the protocol they are checked under.
package sources

// Protocol selects which scheme a source is probed with.
type Protocol string

const (
	HTTP  Protocol = "http"
	HTTPS Protocol = "https"
)

// Registry maps each protocol to its ordered source list. A host may appear
// under both protocols; each entry is probed independently.
type Registry map[Protocol][]string

// Default returns the built-in registry: the mirrors and registries a
// deployment host must be able to reach before we attempt a real rollout.
func Default() Registry {
	return Registry{
		HTTP: {
			"archive.ubuntu.com",
			"security.ubuntu.com",
			"deb.debian.org",
			"mirrorlist.centos.org",
		},
		HTTPS: {
			"github.com",
			"objects.githubusercontent.com",
			"registry-1.docker.io",
			"auth.docker.io",
			"registry.npmjs.org",
			"pypi.org",
			"files.pythonhosted.org",
		},
	}
}

// Protocols returns the probing order: plain HTTP first, then HTTPS.
func Protocols() []Protocol {
	return []Protocol{HTTP, HTTPS}
}

// Hosts returns a copy of the source list for p so callers cannot mutate the
// registry backing array.
func (r Registry) Hosts(p Protocol) []string {
	out := make([]string, len(r[p]))
	copy(out, r[p])
	return out
}

// Total counts the (protocol, host) pairs a full run will probe.
func (r Registry) Total() int {
	n := 0
	for _, hosts := range r {
		n += len(hosts)
	}
	return n
}
