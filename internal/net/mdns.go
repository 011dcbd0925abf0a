package net

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is the mDNS service under which mirrors are advertised.
const ServiceType = "_sketchboard._tcp"

// Service is a mirror found on the local network.
type Service struct {
	Instance string
	Addr     string
	Info     []string
}

// URL returns the viewer page of the mirror.
func (s Service) URL() string {
	return "http://" + s.Addr + "/"
}

// Advertise announces a mirror on port. The caller shuts the returned server
// down when the mirror stops.
func Advertise(instance string, port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}
	if instance == "" {
		instance = host
	}

	info := []string{"SketchBoard", "path=/ws"}
	service, err := mdns.NewMDNSService(instance, ServiceType, "", "", port, nil, info)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	log.Printf("[MDNS] advertising %q as %s on port %d", instance, ServiceType, port)
	return server, nil
}

// Browse queries the network for mirrors for up to timeout, calling found for
// every IPv4 answer.
func Browse(timeout time.Duration, found func(Service)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if s, ok := serviceFromEntry(e); ok {
				found(s)
			}
		}
	}()

	err := mdns.Query(&mdns.QueryParam{
		Service:     ServiceType,
		Domain:      "local",
		Timeout:     timeout,
		Entries:     entries,
		DisableIPv6: true,
	})
	close(entries)
	<-done
	if err != nil {
		return fmt.Errorf("mdns browse: %w", err)
	}
	return nil
}

func serviceFromEntry(e *mdns.ServiceEntry) (Service, bool) {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return Service{}, false
	}
	return Service{
		Instance: e.Name,
		Addr:     fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port),
		Info:     e.InfoFields,
	}, true
}
