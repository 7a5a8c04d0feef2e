package procref

import (
	"net"
	"os"
	"path/filepath"
	"testing"
)

const tcpTable = `  sl  local_address rem_address   st tx_queue rx_queue tr tm->when retrnsmt   uid  timeout inode
   0: 0100007F:1F40 00000000:0000 0A 00000000:00000000 00:00000000 00000000  1000        0 98765 1 0000000000000000 100 0 0 10 0
   1: 0100007F:1F41 00000000:0000 01 00000000:00000000 00:00000000 00000000  1000        0 11111 1 0000000000000000 100 0 0 10 0
`

func TestListenerInode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tcp")
	if err := os.WriteFile(path, []byte(tcpTable), 0o644); err != nil {
		t.Fatal(err)
	}

	// Port 8000 (0x1F40) is in LISTEN state.
	inode, err := listenerInode(8000, path)
	if err != nil {
		t.Fatalf("listenerInode failed: %v", err)
	}
	if inode != "98765" {
		t.Errorf("got inode %q, want %q", inode, "98765")
	}

	// Port 8001 (0x1F41) is ESTABLISHED, not LISTEN, so it must be skipped.
	inode, err = listenerInode(8001, path)
	if err != nil {
		t.Fatalf("listenerInode failed: %v", err)
	}
	if inode != "" {
		t.Errorf("got inode %q for non-listening port, want empty", inode)
	}

	// Unknown port.
	inode, err = listenerInode(9999, path)
	if err != nil {
		t.Fatalf("listenerInode failed: %v", err)
	}
	if inode != "" {
		t.Errorf("got inode %q for unknown port, want empty", inode)
	}
}

func TestListenerInodeMissingFile(t *testing.T) {
	inode, err := listenerInode(8000, filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("listenerInode failed: %v", err)
	}
	if inode != "" {
		t.Errorf("got inode %q for missing file, want empty", inode)
	}
}

func TestFindPidByPortFindsOwnListener(t *testing.T) {
	if _, err := os.Stat("/proc/net/tcp"); err != nil {
		t.Skip("no /proc/net/tcp on this system")
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close() // nolint:errcheck

	port := ln.Addr().(*net.TCPAddr).Port

	pid, err := findPidByPort(port)
	if err != nil {
		t.Fatalf("findPidByPort failed: %v", err)
	}
	if pid == 0 {
		// Restricted environments may hide fd symlinks.
		t.Skip("listener not visible through /proc")
	}
	if int(pid) != os.Getpid() {
		t.Errorf("got pid %d, want %d", pid, os.Getpid())
	}
}

func TestListPids(t *testing.T) {
	if _, err := os.Stat("/proc"); err != nil {
		t.Skip("no /proc on this system")
	}

	pids, err := listPids()
	if err != nil {
		t.Fatalf("listPids failed: %v", err)
	}
	if len(pids) == 0 {
		t.Error("listPids returned no pids")
	}
	for i := 1; i < len(pids); i++ {
		if pids[i] < pids[i-1] {
			t.Fatalf("pids not sorted: %d before %d", pids[i-1], pids[i])
		}
	}
}
