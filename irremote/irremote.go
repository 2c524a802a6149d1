// Package irremote reads key events of an IR receiver exposed by the kernel
// as an evdev input device (gpio-ir + rc keymap).
package irremote

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Key codes sent by the remote's keymap (scancode in the comment).
const (
	KEY_STOP   = 128   // 0x10d8
	KEY_UP     = 103   // 0x10a0
	KEY_DOWN   = 108   // 0x1000
	KEY_LEFT   = 105   // 0x1010
	KEY_RIGHT  = 106   // 0x1080
	KEY_SELECT = 0x161 // 0x1020
)

const DefaultDevice = "/dev/input/event0"

// Action is the evdev key value.
type Action int32

const (
	Release Action = 0
	Press   Action = 1
	Repeat  Action = 2
)

// Key is one decoded key event.
type Key struct {
	Code   uint16
	Action Action
}

// struct input_event: timeval, type, code, value. The timeval is 8 or 16
// bytes depending on the userland word size.
var (
	timevalSize = int(unsafe.Sizeof(unix.Timeval{}))
	EventSize   = timevalSize + 8
)

// Decode parses one input_event. ok is false for anything but EV_KEY.
func Decode(buf []byte) (k Key, ok bool) {
	if len(buf) < EventSize {
		return Key{}, false
	}
	b := buf[timevalSize:]
	if binary.NativeEndian.Uint16(b[0:2]) != unix.EV_KEY {
		return Key{}, false
	}
	k.Code = binary.NativeEndian.Uint16(b[2:4])
	k.Action = Action(int32(binary.NativeEndian.Uint32(b[4:8])))
	return k, true
}

type Reader struct {
	fd int
}

func Open(path string) (*Reader, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("irremote: open %s: %w", path, err)
	}
	return &Reader{fd: fd}, nil
}

func (r *Reader) Close() error {
	return unix.Close(r.fd)
}

// Run delivers key events to fn until ctx is done or the device fails.
func (r *Reader) Run(ctx context.Context, fn func(Key)) error {
	buf := make([]byte, EventSize*64)
	fds := []unix.PollFd{{Fd: int32(r.fd), Events: unix.POLLIN}}
	for ctx.Err() == nil {
		n, err := unix.Poll(fds, 200)
		if errors.Is(err, unix.EINTR) || n == 0 {
			continue
		}
		if err != nil {
			return fmt.Errorf("irremote: poll: %w", err)
		}
		if fds[0].Revents&(unix.POLLERR|unix.POLLHUP) != 0 {
			return errors.New("irremote: device gone")
		}
		n, err = unix.Read(r.fd, buf)
		if errors.Is(err, unix.EAGAIN) {
			continue
		}
		if err != nil {
			return fmt.Errorf("irremote: read: %w", err)
		}
		for off := 0; off+EventSize <= n; off += EventSize {
			if k, ok := Decode(buf[off : off+EventSize]); ok {
				fn(k)
			}
		}
	}
	return nil
}
