package testutil

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// CountingFs wraps an afero.Fs and records stat calls and mutations. It is
// used to observe short-circuiting and to assert that a run changed
// nothing.
type CountingFs struct {
	afero.Fs

	mu        sync.Mutex
	stats     []string
	mutations []string
}

// NewCountingFs wraps fsys. A nil fsys wraps a fresh MemMapFs.
func NewCountingFs(fsys afero.Fs) *CountingFs {
	if fsys == nil {
		fsys = afero.NewMemMapFs()
	}
	return &CountingFs{Fs: fsys}
}

// Stat records name and delegates.
func (c *CountingFs) Stat(name string) (os.FileInfo, error) {
	c.mu.Lock()
	c.stats = append(c.stats, name)
	c.mu.Unlock()
	return c.Fs.Stat(name)
}

// StatCount returns how many Stat calls had a path under prefix.
func (c *CountingFs) StatCount(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, name := range c.stats {
		if strings.HasPrefix(name, prefix) {
			n++
		}
	}
	return n
}

// Mutations returns a description of every mutating call, in order.
func (c *CountingFs) Mutations() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.mutations))
	copy(out, c.mutations)
	return out
}

// Reset forgets recorded calls.
func (c *CountingFs) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = nil
	c.mutations = nil
}

func (c *CountingFs) record(op, name string) {
	c.mu.Lock()
	c.mutations = append(c.mutations, op+" "+name)
	c.mu.Unlock()
}

func (c *CountingFs) Create(name string) (afero.File, error) {
	c.record("create", name)
	return c.Fs.Create(name)
}

func (c *CountingFs) Mkdir(name string, perm os.FileMode) error {
	c.record("mkdir", name)
	return c.Fs.Mkdir(name, perm)
}

func (c *CountingFs) MkdirAll(path string, perm os.FileMode) error {
	c.record("mkdirall", path)
	return c.Fs.MkdirAll(path, perm)
}

func (c *CountingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE|os.O_TRUNC|os.O_APPEND) != 0 {
		c.record("write", name)
	}
	return c.Fs.OpenFile(name, flag, perm)
}

func (c *CountingFs) Remove(name string) error {
	c.record("remove", name)
	return c.Fs.Remove(name)
}

func (c *CountingFs) RemoveAll(path string) error {
	c.record("removeall", path)
	return c.Fs.RemoveAll(path)
}

func (c *CountingFs) Rename(oldname, newname string) error {
	c.record("rename", oldname+" -> "+newname)
	return c.Fs.Rename(oldname, newname)
}

func (c *CountingFs) Chmod(name string, mode os.FileMode) error {
	c.record("chmod", name)
	return c.Fs.Chmod(name, mode)
}

func (c *CountingFs) Chown(name string, uid, gid int) error {
	c.record("chown", name)
	return c.Fs.Chown(name, uid, gid)
}

func (c *CountingFs) Chtimes(name string, atime, mtime time.Time) error {
	c.record("chtimes", name)
	return c.Fs.Chtimes(name, atime, mtime)
}

func (c *CountingFs) Name() string {
	return "CountingFs(" + c.Fs.Name() + ")"
}
