package input

import (
	"fmt"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"
)

// bufPool pools read buffers so scanning many small files does not allocate per file.
var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 64*1024)
		return &b
	},
}

// FileReader opens a file once, fstats it, and reads it either with pread into a
// pooled buffer or by memory-mapping it when it is at least threshold bytes.
type FileReader struct {
	threshold int64
}

// NewFileReader creates a FileReader. A threshold <= 0 uses DefaultMmapThreshold.
func NewFileReader(mmapThreshold int64) *FileReader {
	if mmapThreshold <= 0 {
		mmapThreshold = DefaultMmapThreshold
	}
	return &FileReader{threshold: mmapThreshold}
}

func (r *FileReader) Read(path string) (ReadResult, error) {
	fd, err := openFile(path)
	if err != nil {
		return ReadResult{}, fmt.Errorf("open %s: %w", path, err)
	}

	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		unix.Close(fd)
		return ReadResult{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.Mode&unix.S_IFMT != unix.S_IFREG {
		unix.Close(fd)
		return ReadResult{}, fmt.Errorf("read %s: not a regular file", path)
	}

	size := stat.Size
	if size == 0 {
		unix.Close(fd)
		return ReadResult{Data: nil, Closer: noopCloser}, nil
	}
	if size >= r.threshold {
		return readMmap(fd, size, path)
	}
	return readBuffered(fd, size, path)
}

// readBuffered reads the whole file with pread. Takes ownership of fd.
func readBuffered(fd int, size int64, path string) (ReadResult, error) {
	bp := bufPool.Get().(*[]byte)
	buf := *bp
	if cap(buf) < int(size) {
		buf = make([]byte, size)
	} else {
		buf = buf[:size]
	}

	var total int
	for total < int(size) {
		n, err := unix.Pread(fd, buf[total:], int64(total))
		if err != nil {
			unix.Close(fd)
			*bp = buf
			bufPool.Put(bp)
			return ReadResult{}, fmt.Errorf("read %s: %w", path, err)
		}
		if n == 0 {
			break
		}
		total += n
	}
	unix.Close(fd)

	return ReadResult{
		Data: buf[:total],
		Closer: func() error {
			*bp = buf
			bufPool.Put(bp)
			return nil
		},
	}, nil
}

// readMmap maps the file read-only. Falls back to pread if the mapping fails.
func readMmap(fd int, size int64, path string) (ReadResult, error) {
	unix.Fadvise(fd, 0, size, unix.FADV_SEQUENTIAL)

	data, err := syscall.Mmap(fd, 0, int(size), syscall.PROT_READ, syscall.MAP_PRIVATE)
	if err != nil {
		return readBuffered(fd, size, path)
	}
	unix.Madvise(data, unix.MADV_SEQUENTIAL)

	return ReadResult{
		Data: data,
		Closer: func() error {
			err := syscall.Munmap(data)
			unix.Close(fd)
			return err
		},
	}, nil
}

// openFile opens a file with O_NOATIME, falling back without it.
func openFile(path string) (int, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NOATIME|unix.O_CLOEXEC, 0)
	if err != nil {
		fd, err = unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	}
	return fd, err
}
