// Package main generates a Certificate Authority (CA) and a server certificate
// for running the sandbox over HTTPS, writing them under the "certs" directory.
// An existing CA is reused so clients keep trusting reissued server certificates.
package main

import (
	"crypto/x509"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/atinyakov/mouthpiecer/internal/certgen"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	flags := flag.NewFlagSet("certgen", flag.ContinueOnError)
	flags.SetOutput(out)
	dir := flags.String("dir", "certs", "output directory")
	hosts := flags.String("hosts", "localhost,127.0.0.1", "comma separated server host names and IPs")
	cn := flags.String("cn", "Mouthpiecer Sandbox CA", "CA common name")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", *dir, err)
	}

	caCert, caKey, created, err := loadOrCreateCA(*dir, *cn)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(out, "Created CA %s\n", filepath.Join(*dir, "ca.crt"))
	} else {
		fmt.Fprintf(out, "Reusing CA %s\n", filepath.Join(*dir, "ca.crt"))
	}

	certPEM, keyPEM, err := certgen.IssueServerCertificate(splitHosts(*hosts), caCert, caKey)
	if err != nil {
		return err
	}
	if err := certgen.WritePair(*dir, "server", certPEM, keyPEM); err != nil {
		return err
	}

	fmt.Fprintf(out, "Server certificate written to %s\n", *dir)
	return nil
}

func loadOrCreateCA(dir, cn string) (*x509.Certificate, any, bool, error) {
	certPath, keyPath := filepath.Join(dir, "ca.crt"), filepath.Join(dir, "ca.key")
	cert, key, err := certgen.LoadCACredentials(certPath, keyPath)
	if err == nil {
		return cert, key, false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, false, err
	}

	newCert, newKey, err := certgen.NewCA(cn)
	if err != nil {
		return nil, nil, false, err
	}
	keyPEM, err := certgen.EncodeKey(newKey)
	if err != nil {
		return nil, nil, false, err
	}
	if err := certgen.WritePair(dir, "ca", certgen.EncodeCert(newCert.Raw), keyPEM); err != nil {
		return nil, nil, false, err
	}
	return newCert, newKey, true, nil
}

func splitHosts(s string) []string {
	var hosts []string
	for _, h := range strings.Split(s, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}
