package classfile

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classenum/internal/classpath"
	"classenum/internal/testutil"
)

func TestClasspathLoader_Load(t *testing.T) {
	root := t.TempDir()
	path := testutil.WriteClassSpec(t, root, testutil.ClassSpec{
		Name:       "com.example.A",
		Interfaces: []string{"java.lang.Runnable"},
	})
	testutil.WriteFile(t, filepath.Join(root, "com", "example", "Broken.class"), []byte("not a class"))
	// Declares a different name than its location
	testutil.WriteFile(t, filepath.Join(root, "com", "example", "Moved.class"),
		testutil.ClassBytes(testutil.ClassSpec{Name: "com.other.Moved"}))

	loader, err := NewClasspathLoader(classpath.New(root))
	require.NoError(t, err)

	t.Run("loads header into handle", func(t *testing.T) {
		handle, err := loader.Load("com.example.A")
		require.NoError(t, err)
		assert.Equal(t, "com.example.A", handle.Name)
		assert.Equal(t, path, handle.Path)
		assert.Equal(t, "java.lang.Object", handle.SuperName)
		assert.Equal(t, []string{"java.lang.Runnable"}, handle.Interfaces)
		assert.Equal(t, 17, handle.JavaRelease())
		assert.Equal(t, "class", handle.Kind())
	})

	t.Run("cached handle is reused", func(t *testing.T) {
		first, err := loader.Load("com.example.A")
		require.NoError(t, err)
		second, err := loader.Load("com.example.A")
		require.NoError(t, err)
		assert.Same(t, first, second)
	})

	t.Run("missing class", func(t *testing.T) {
		_, err := loader.Load("com.example.Missing")
		assert.Error(t, err)
	})

	t.Run("malformed class", func(t *testing.T) {
		_, err := loader.Load("com.example.Broken")
		assert.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("name mismatch", func(t *testing.T) {
		_, err := loader.Load("com.example.Moved")
		assert.ErrorContains(t, err, "declares com.other.Moved")
	})
}

func TestClasspathLoader_ConcurrentLoad(t *testing.T) {
	root := t.TempDir()
	testutil.WriteClass(t, root, "com.example.Shared")

	loader, err := NewClasspathLoader(classpath.New(root))
	require.NoError(t, err)

	var wg sync.WaitGroup
	handles := make([]any, 16)
	for i := range handles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h, err := loader.Load("com.example.Shared")
			if err == nil {
				handles[i] = h
			}
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(handles); i++ {
		assert.Same(t, handles[0], handles[i])
	}
	assert.Equal(t, 1, loader.Len())
}

func TestNewClasspathLoaderSize_Invalid(t *testing.T) {
	_, err := NewClasspathLoaderSize(classpath.New("."), 0)
	assert.Error(t, err)
}
