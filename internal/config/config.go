// Package config resolves the client-side namespace configuration. Every
// recognized option is an explicit typed field, validated at load time.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultTimeout bounds proxy requests when the configuration does not say
// otherwise.
const DefaultTimeout = 30 * time.Second

// A Namespace is the resolved configuration of one namespace.
type Namespace struct {
	// Namespace is the namespace name, e.g. "OPENIO".
	Namespace string
	// Proxy is the base URL of the proxy serving the namespace.
	Proxy string
	// Account is the default account used when no flag overrides it.
	Account string
	// Timeout bounds every proxy request.
	Timeout time.Duration
}

// file is the on-disk layout: one document holding several namespaces.
// Durations travel as strings ("10s") and are parsed explicitly.
type file struct {
	Namespaces map[string]section `yaml:"namespaces"`
}

type section struct {
	Proxy   string `yaml:"proxy"`
	Account string `yaml:"account"`
	Timeout string `yaml:"timeout"`
}

// Places returns the configuration file candidates, most specific first.
func Places() []string {
	var places []string
	if p := os.Getenv("OIO_CONFIG"); p != "" {
		places = append(places, p)
	}
	if home, err := os.UserHomeDir(); err == nil {
		places = append(places, filepath.Join(home, ".oio", "sds.yml"))
	}
	return append(places, "/etc/oio/sds.yml")
}

// Load reads the section of the given namespace from the first readable
// configuration file. When no file exists the zero Namespace is returned,
// so that flags and environment alone can configure the client.
func Load(ns string) (Namespace, error) {
	for _, place := range Places() {
		payload, err := os.ReadFile(place)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Namespace{}, errors.Wrapf(err, "could not read config %s", place)
		}
		return Parse(payload, ns, place)
	}
	return Namespace{Namespace: ns}, nil
}

// LoadFile reads the section of the given namespace from an explicitly named
// configuration file. Unlike Load, a missing file is an error.
func LoadFile(place, ns string) (Namespace, error) {
	payload, err := os.ReadFile(place)
	if err != nil {
		return Namespace{}, errors.Wrapf(err, "could not read config %s", place)
	}
	return Parse(payload, ns, place)
}

// Parse decodes one configuration document and extracts the section of the
// given namespace. An existing file that does not know the namespace is an
// error, like a missing INI section used to be.
func Parse(payload []byte, ns, place string) (Namespace, error) {
	var f file
	if err := yaml.Unmarshal(payload, &f); err != nil {
		return Namespace{}, errors.Wrapf(err, "malformed config %s", place)
	}

	s, ok := f.Namespaces[ns]
	if !ok {
		return Namespace{}, errors.Errorf("unable to find namespace %q in config %s", ns, place)
	}

	resolved := Namespace{
		Namespace: ns,
		Proxy:     s.Proxy,
		Account:   s.Account,
	}
	if s.Timeout != "" {
		timeout, err := time.ParseDuration(s.Timeout)
		if err != nil {
			return Namespace{}, errors.Wrapf(err, "malformed timeout in config %s", place)
		}
		resolved.Timeout = timeout
	}
	return resolved, nil
}

// Merge overlays the non-zero fields of override onto n.
func (n Namespace) Merge(override Namespace) Namespace {
	if override.Namespace != "" {
		n.Namespace = override.Namespace
	}
	if override.Proxy != "" {
		n.Proxy = override.Proxy
	}
	if override.Account != "" {
		n.Account = override.Account
	}
	if override.Timeout != 0 {
		n.Timeout = override.Timeout
	}
	return n
}

// Validate reports the first missing mandatory field. Timeout is defaulted,
// not required.
func (n *Namespace) Validate() error {
	if n.Namespace == "" {
		return errors.New("namespace missing from configuration")
	}
	if n.Proxy == "" {
		return errors.Errorf("no proxy configured for namespace %q", n.Namespace)
	}
	if n.Timeout == 0 {
		n.Timeout = DefaultTimeout
	}
	return nil
}
