package gateway

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	errs "github.com/amirhossein-jamali/wallet-funding/internal/domain/error"
	gatewayport "github.com/amirhossein-jamali/wallet-funding/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/config"
)

// Registry resolves gateway names to provider clients
type Registry struct {
	clients        map[string]gatewayport.Client
	defaultGateway string
}

// NormalizeName is applied on registration and lookup so both sides agree
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewRegistry builds a registry; the default gateway must be one of clients
func NewRegistry(defaultGateway string, clients ...gatewayport.Client) (*Registry, error) {
	r := &Registry{
		clients:        make(map[string]gatewayport.Client, len(clients)),
		defaultGateway: NormalizeName(defaultGateway),
	}
	for _, c := range clients {
		name := NormalizeName(c.Name())
		if name == "" {
			return nil, fmt.Errorf("gateway client has empty name")
		}
		if _, dup := r.clients[name]; dup {
			return nil, fmt.Errorf("gateway %q registered twice", name)
		}
		r.clients[name] = c
	}

	if _, ok := r.clients[r.defaultGateway]; !ok {
		return nil, fmt.Errorf("default gateway %q is not enabled", defaultGateway)
	}
	return r, nil
}

// NewRegistryFromConfig registers every enabled provider sharing one HTTP client
func NewRegistryFromConfig(cfg config.PaymentConfig, client *http.Client) (*Registry, error) {
	var clients []gatewayport.Client
	if cfg.Gateways.Payir.Enabled {
		clients = append(clients, NewPayir(cfg.Gateways.Payir, client))
	}
	if cfg.Gateways.Zarinpal.Enabled {
		clients = append(clients, NewZarinpal(cfg.Gateways.Zarinpal, client))
	}
	return NewRegistry(cfg.DefaultGateway, clients...)
}

// Resolve returns the client for name; an empty name selects the default gateway
func (r *Registry) Resolve(name string) (gatewayport.Client, error) {
	key := NormalizeName(name)
	if key == "" {
		key = r.defaultGateway
	}
	client, ok := r.clients[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedGateway, name)
	}
	return client, nil
}

// Names lists registered gateways in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns the default gateway name
func (r *Registry) Default() string {
	return r.defaultGateway
}
