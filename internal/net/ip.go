package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"time"
)

// routeAddr is never contacted; dialing UDP only selects a route.
const routeAddr = "8.8.8.8:80"

var errNoLANAddress = errors.New("no LAN address")

// ShareIP returns the address viewers on the LAN should use to reach the
// mirror. Without a default route it falls back to the first IPv4 address of
// an interface that is up, then to loopback.
func ShareIP(ctx context.Context) net.IP {
	if ip, err := routedIP(ctx); err == nil {
		return ip
	}
	ifaces, err := net.Interfaces()
	if err == nil {
		if ip, err := lanIP(ifaces); err == nil {
			return ip
		}
	}
	log.Println("[MIRROR] no LAN address found, share link uses loopback")
	return net.IPv4(127, 0, 0, 1)
}

func routedIP(ctx context.Context) (net.IP, error) {
	d := net.Dialer{Timeout: time.Second}
	conn, err := d.DialContext(ctx, "udp", routeAddr)
	if err != nil {
		return nil, fmt.Errorf("find route: %w", err)
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP, nil
}

func lanIP(ifaces []net.Interface) (net.IP, error) {
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		if ip := firstIPv4(addrs); ip != nil {
			return ip, nil
		}
	}
	return nil, errNoLANAddress
}

func firstIPv4(addrs []net.Addr) net.IP {
	for _, a := range addrs {
		if ipnet, ok := a.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if v4 := ipnet.IP.To4(); v4 != nil {
				return v4
			}
		}
	}
	return nil
}

// ShareURL is the address viewers open to watch the canvas.
func ShareURL(ip net.IP, port int) string {
	return "http://" + net.JoinHostPort(ip.String(), strconv.Itoa(port)) + "/"
}
