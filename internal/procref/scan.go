package procref

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// tcpListenState is the st column value for LISTEN in /proc/net/tcp.
const tcpListenState = "0A"

// findPidByPort finds the PID of the process listening on the given port by
// walking /proc: the socket inode comes from /proc/net/tcp(6), the owning
// process from the fd tables. Returns 0 when no listener matches.
func findPidByPort(port int) (int32, error) {
	inode, err := listenerInode(port, "/proc/net/tcp")
	if err != nil || inode == "" {
		inode, err = listenerInode(port, "/proc/net/tcp6")
	}
	if err != nil {
		return 0, err
	}
	if inode == "" {
		return 0, nil
	}

	return pidOwningInode(inode)
}

// listenerInode scans one /proc/net table for a socket in LISTEN state on the
// port. Ports in the table are hex, uppercase, zero padded.
func listenerInode(port int, table string) (string, error) {
	//nolint:gosec // G304: Path is from /proc filesystem for system information.
	f, err := os.Open(table)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	defer f.Close() // nolint:errcheck

	wantPort := fmt.Sprintf("%04X", port)

	scanner := bufio.NewScanner(f)
	scanner.Scan() // header row

	for scanner.Scan() {
		// sl local_address rem_address st ... uid timeout inode
		fields := strings.Fields(scanner.Text())
		if len(fields) < 10 {
			continue
		}

		addr := fields[1]
		sep := strings.LastIndex(addr, ":")
		if sep < 0 || addr[sep+1:] != wantPort {
			continue
		}
		if fields[3] != tcpListenState {
			continue
		}

		return fields[9], nil
	}

	return "", scanner.Err()
}

// pidOwningInode walks /proc/[pid]/fd looking for the socket symlink that
// names the inode. Unreadable fd directories are skipped, so listeners owned
// by other users may not resolve without elevated permissions.
func pidOwningInode(inode string) (int32, error) {
	socketLink := "socket:[" + inode + "]"

	pids, err := listPids()
	if err != nil {
		return 0, err
	}

	for _, pid := range pids {
		fdDir := filepath.Join("/proc", strconv.Itoa(pid), "fd")
		fds, err := os.ReadDir(fdDir)
		if err != nil {
			continue
		}

		for _, fd := range fds {
			info, err := fd.Info()
			if err != nil || info.Mode()&fs.ModeSymlink == 0 {
				continue
			}

			link, err := os.Readlink(filepath.Join(fdDir, fd.Name()))
			if err != nil {
				continue
			}

			if link == socketLink {
				//nolint:gosec // G109: PID conversion is safe, validated by Atoi
				return int32(pid), nil
			}
		}
	}

	return 0, nil
}

// listPids returns all running process IDs from /proc, lowest first.
func listPids() ([]int, error) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return nil, fmt.Errorf("failed to read /proc: %w", err)
	}

	var pids []int
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		pid, err := strconv.Atoi(entry.Name())
		if err != nil || pid <= 0 {
			continue
		}
		pids = append(pids, pid)
	}
	sort.Ints(pids)

	return pids, nil
}
