package printer

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/grandcat/zeroconf"
)

const (
	// Service is the mDNS service raw-socket (port 9100) printers advertise.
	Service = "_pdl-datastream._tcp"
	Domain  = "local."
)

// Printer is a label printer found on the local network.
type Printer struct {
	Name string `json:"name"`
	Host string `json:"host"`
	IP   string `json:"ip"`
	Port int    `json:"port"`
}

// Address returns host:port suitable for Send.
func (p Printer) Address() string {
	host := p.IP
	if host == "" {
		host = p.Host
	}
	return net.JoinHostPort(host, strconv.Itoa(p.Port))
}

// Browse scans for printers until ctx is done, sending each one to out.
// out is closed when browsing stops.
func Browse(ctx context.Context, out chan<- Printer) error {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		close(out)
		return fmt.Errorf("failed to create resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry, 10)
	go func() {
		defer close(out)
		for entry := range entries {
			out <- fromEntry(entry)
		}
	}()

	if err := resolver.Browse(ctx, Service, Domain, entries); err != nil {
		return fmt.Errorf("failed to browse: %w", err)
	}
	return nil
}

// Scan browses until ctx is done and returns everything found.
func Scan(ctx context.Context) ([]Printer, error) {
	out := make(chan Printer, 10)
	errCh := make(chan error, 1)
	go func() { errCh <- Browse(ctx, out) }()

	var printers []Printer
	for p := range out {
		printers = append(printers, p)
	}
	return printers, <-errCh
}

func fromEntry(entry *zeroconf.ServiceEntry) Printer {
	p := Printer{
		Name: entry.Instance,
		Host: entry.HostName,
		Port: entry.Port,
	}
	if len(entry.AddrIPv4) > 0 {
		p.IP = entry.AddrIPv4[0].String()
	}
	if p.Port == 0 {
		p.Port = DefaultPort
	}
	return p
}
