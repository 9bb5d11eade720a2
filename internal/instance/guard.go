// Package instance keeps a single launcher running per user. The first
// instance holds a lock file and listens on a loopback port; later instances
// ask it to raise its window instead of opening a second one.
package instance

import (
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"codelaunch/internal/errors"
	"codelaunch/internal/log"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// File names used inside the guard directory.
const (
	LockFile    = "codelaunch.lock"
	AddressFile = "codelaunch.addr"
)

// DialTimeout bounds the whole raise exchange with a running instance.
var DialTimeout = time.Second

// Outcome is the result of Acquire.
type Outcome int

const (
	// First means this process is the only instance.
	First Outcome = iota
	// Raised means a running instance acknowledged the raise request and
	// this process should exit successfully.
	Raised
	// Stale means another process holds the lock but did not answer. This
	// process runs anyway without owning the lock.
	Stale
)

func (o Outcome) String() string {
	switch o {
	case Raised:
		return "raised"
	case Stale:
		return "stale"
	default:
		return "first"
	}
}

// Guard is held for the lifetime of the running launcher.
type Guard struct {
	title    string
	lock     *flock.Flock
	listener net.Listener
	addrPath string
	raises   chan struct{}

	wg   sync.WaitGroup
	once sync.Once
}

// Acquire takes the single-instance lock in dir. When the lock is already
// held it asks the holder to raise the window titled title. The returned
// Guard is nil only when the outcome is Raised or an error occurred.
func Acquire(dir, title string) (*Guard, Outcome, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, First, errors.Wrap(err, "failed to create instance directory")
	}

	lock := flock.New(filepath.Join(dir, LockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, First, errors.Wrap(err, "failed to take instance lock")
	}

	addrPath := filepath.Join(dir, AddressFile)
	if !locked {
		log.Info("another instance is running")
		raised, err := Ask(addrPath, title)
		if raised {
			log.Info("existing instance activated")
			return nil, Raised, nil
		}
		log.LogWithFields(log.F("error", errString(err))).Warn("Another instance detected but it did not respond. Starting new instance.")
		return &Guard{title: title, raises: make(chan struct{}, 1)}, Stale, nil
	}

	g := &Guard{
		title:    title,
		lock:     lock,
		addrPath: addrPath,
		raises:   make(chan struct{}, 1),
	}
	if err := g.listen(); err != nil {
		// Still the only instance; later ones will fall back to Stale.
		log.LogWithFields(log.F("error", err.Error())).Warn("cannot serve raise requests")
	}
	log.Debug("no existing instance detected, this is the first instance")
	return g, First, nil
}

func (g *Guard) listen() error {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return err
	}
	if err := os.WriteFile(g.addrPath, []byte(l.Addr().String()), 0600); err != nil {
		l.Close()
		return err
	}
	g.listener = l
	g.wg.Add(1)
	go g.serve()
	return nil
}

func (g *Guard) serve() {
	defer g.wg.Done()
	for {
		conn, err := g.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.LogWithFields(log.F("error", err.Error())).Warn("accept failed")
			continue
		}
		g.handle(conn)
	}
}

func (g *Guard) handle(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(DialTimeout))

	var req raiseRequest
	if err := readMessage(conn, &req); err != nil {
		log.LogWithFields(log.F("error", err.Error())).Debug("bad raise request")
		return
	}
	raised := req.Title == g.title
	if raised {
		select {
		case g.raises <- struct{}{}:
		default:
		}
	}
	log.LogWithFields(log.F("id", req.ID), log.F("pid", req.PID), log.F("raised", raised)).Info("raise requested by second instance")
	if err := writeMessage(conn, raiseReply{ID: req.ID, Raised: raised, PID: os.Getpid()}); err != nil {
		log.LogWithFields(log.F("error", err.Error())).Debug("raise reply failed")
	}
}

// Raises delivers one value per accepted raise request. Pending requests
// are coalesced.
func (g *Guard) Raises() <-chan struct{} {
	return g.raises
}

// Owner reports whether this guard holds the lock.
func (g *Guard) Owner() bool {
	return g.lock != nil
}

// Release stops serving raise requests and releases the lock.
func (g *Guard) Release() {
	if g == nil {
		return
	}
	g.once.Do(func() {
		if g.listener != nil {
			g.listener.Close()
			g.wg.Wait()
			os.Remove(g.addrPath)
		}
		if g.lock != nil {
			if err := g.lock.Unlock(); err != nil {
				log.LogWithFields(log.F("error", err.Error())).Warn("failed to release instance lock")
			}
		}
	})
}

// Ask sends a raise request to the instance whose address is stored in
// addrPath and reports whether it acknowledged.
func Ask(addrPath, title string) (bool, error) {
	data, err := os.ReadFile(addrPath)
	if err != nil {
		return false, err
	}
	addr := strings.TrimSpace(string(data))

	conn, err := net.DialTimeout("tcp", addr, DialTimeout)
	if err != nil {
		return false, err
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(DialTimeout))

	req := raiseRequest{ID: uuid.NewString(), Title: title, PID: os.Getpid()}
	if err := writeMessage(conn, req); err != nil {
		return false, err
	}
	var reply raiseReply
	if err := readMessage(conn, &reply); err != nil {
		return false, err
	}
	if reply.ID != req.ID {
		return false, errors.Newf("reply %q does not match request %q", reply.ID, req.ID)
	}
	return reply.Raised, nil
}

func errString(err error) string {
	if err == nil {
		return "title mismatch"
	}
	return err.Error()
}
