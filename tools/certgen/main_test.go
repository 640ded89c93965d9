package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atinyakov/mouthpiecer/internal/certgen"
)

func TestRun_CreatesCAAndServerCert(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "certs")
	var out bytes.Buffer

	if err := run([]string{"-dir", dir, "-hosts", "localhost, 127.0.0.1"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, name := range []string{"ca.crt", "ca.key", "server.crt", "server.key"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
	if !strings.Contains(out.String(), "Created CA") {
		t.Errorf("unexpected output %q", out.String())
	}

	caCert, _, err := certgen.LoadCACredentials(filepath.Join(dir, "ca.crt"), filepath.Join(dir, "ca.key"))
	if err != nil {
		t.Fatalf("load CA: %v", err)
	}
	serverCert, _, err := certgen.LoadCACredentials(filepath.Join(dir, "server.crt"), filepath.Join(dir, "server.key"))
	if err != nil {
		t.Fatalf("load server pair: %v", err)
	}
	if err := serverCert.CheckSignatureFrom(caCert); err != nil {
		t.Errorf("server certificate not signed by CA: %v", err)
	}
}

func TestRun_ReusesExistingCA(t *testing.T) {
	dir := t.TempDir()
	if err := run([]string{"-dir", dir}, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(filepath.Join(dir, "ca.crt"))
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := run([]string{"-dir", dir}, &out); err != nil {
		t.Fatal(err)
	}
	after, err := os.ReadFile(filepath.Join(dir, "ca.crt"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("CA was regenerated")
	}
	if !strings.Contains(out.String(), "Reusing CA") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestRun_CorruptCA(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ca.crt"), []byte("junk"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ca.key"), []byte("junk"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := run([]string{"-dir", dir}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for corrupt CA")
	}
}

func TestRun_BadFlag(t *testing.T) {
	if err := run([]string{"-nope"}, &bytes.Buffer{}); err == nil {
		t.Error("expected flag error")
	}
}

func TestSplitHosts(t *testing.T) {
	got := splitHosts(" localhost ,,10.0.0.1 ")
	if len(got) != 2 || got[0] != "localhost" || got[1] != "10.0.0.1" {
		t.Errorf("splitHosts = %v", got)
	}
}
