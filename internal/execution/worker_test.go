package execution

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classenum/internal/classfile"
	"classenum/internal/classpath"
	"classenum/internal/discovery"
	"classenum/internal/domain"
	"classenum/internal/testutil"
)

type fakeEnumerator struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeEnumerator) Enumerate(pkg string) ([]*domain.ClassHandle, error) {
	f.mu.Lock()
	f.calls = append(f.calls, pkg)
	f.mu.Unlock()
	if strings.HasPrefix(pkg, "bad") {
		return nil, domain.NewResolutionError(pkg, "no resource", nil)
	}
	return []*domain.ClassHandle{{Name: pkg + ".A"}}, nil
}

type recordingProgress struct {
	mu       sync.Mutex
	updates  int
	success  int
	failed   int
	finished bool
}

func (p *recordingProgress) Update(successCount, failCount int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates++
	p.success, p.failed = successCount, failCount
}

func (p *recordingProgress) Finish() {
	p.finished = true
}

func TestWorkerPool_Execute(t *testing.T) {
	fake := &fakeEnumerator{}
	pool := NewWorkerPool(3, NewRunner(fake))
	progress := &recordingProgress{}
	pool.SetProgress(progress)

	packages := []string{"org.c", "bad.one", "com.a", "net.b"}
	results, _, err := pool.Execute(context.Background(), packages)
	require.NoError(t, err)
	require.Len(t, results, 4)

	// sorted by package name
	assert.Equal(t, "bad.one", results[0].Package)
	assert.Equal(t, "com.a", results[1].Package)
	assert.False(t, results[0].Success())
	assert.NotEmpty(t, results[0].Error)
	assert.True(t, results[1].Success())
	assert.Equal(t, "com.a.A", results[1].Classes[0].Name)

	assert.Equal(t, 4, progress.updates)
	assert.Equal(t, 3, progress.success)
	assert.Equal(t, 1, progress.failed)
	assert.True(t, progress.finished)
}

func TestWorkerPool_FailFast(t *testing.T) {
	fake := &fakeEnumerator{}
	pool := NewWorkerPool(1, NewRunner(fake))

	packages := []string{"bad.first", "com.a", "com.b", "com.c", "com.d"}
	results, _, err := pool.ExecuteWithOptions(context.Background(), packages, true)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "bad.first", results[0].Package)
	assert.Equal(t, []string{"bad.first"}, fake.calls)
}

func TestWorkerPool_Empty(t *testing.T) {
	pool := NewWorkerPool(0, NewRunner(&fakeEnumerator{}))
	results, duration, err := pool.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, duration)
}

func TestWorkerPool_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewWorkerPool(2, NewRunner(&fakeEnumerator{}))
	_, _, err := pool.Execute(ctx, []string{"com.a", "com.b"})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestWorkerPool_WithEnumerator(t *testing.T) {
	root := t.TempDir()
	testutil.WriteClass(t, root, "com.example.A")
	testutil.WriteClass(t, root, "com.example.B")
	testutil.WriteClass(t, root, "org.util.Strings")

	sp := classpath.New(root)
	loader, err := classfile.NewClasspathLoader(sp)
	require.NoError(t, err)

	pool := NewWorkerPool(2, NewRunner(discovery.NewEnumerator(sp, loader)))
	results, _, err := pool.Execute(context.Background(), []string{"org.util", "com.example", "com.missing"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Len(t, results[0].Classes, 2)
	var resErr *domain.ResolutionError
	assert.True(t, errors.As(results[1].Err, &resErr))
	assert.Len(t, results[2].Classes, 1)
}
