package selector

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/themerc/pkg/status"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
}

func collect(t *testing.T, ctx context.Context, opts Options) ([]string, error) {
	t.Helper()
	var paths []string
	for path, err := range Walk(ctx, opts) {
		if err != nil {
			return paths, err
		}
		rel, relErr := filepath.Rel(opts.Root, path)
		require.NoError(t, relErr)
		paths = append(paths, filepath.ToSlash(rel))
	}
	sort.Strings(paths)
	return paths, nil
}

func TestWalk(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"App.tsx",
		"components/Button.tsx",
		"components/ui/Card.tsx",
		"components/util.ts",
		"context/ThemeContext.tsx",
		"screens/AccountScreen.tsx",
		"screens/AccountScreenHeader.tsx",
		"screens/HomeScreen.tsx",
		"node_modules/lib/Thing.tsx",
		"theme/colors.ts",
	)

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "extension_only",
			opts: Options{Root: root, Extension: ".tsx"},
			want: []string{
				"App.tsx",
				"components/Button.tsx",
				"components/ui/Card.tsx",
				"context/ThemeContext.tsx",
				"node_modules/lib/Thing.tsx",
				"screens/AccountScreen.tsx",
				"screens/AccountScreenHeader.tsx",
				"screens/HomeScreen.tsx",
			},
		},
		{
			name: "exclusions_and_ignores",
			opts: Options{
				Root:      root,
				Extension: ".tsx",
				Exclude:   []string{"ThemeContext", "AccountScreen.tsx"},
				Ignore:    []string{"**/node_modules/**"},
			},
			want: []string{
				"App.tsx",
				"components/Button.tsx",
				"components/ui/Card.tsx",
				"screens/AccountScreenHeader.tsx",
				"screens/HomeScreen.tsx",
			},
		},
		{
			name: "other_extension",
			opts: Options{Root: root, Extension: ".ts"},
			want: []string{
				"components/util.ts",
				"theme/colors.ts",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := collect(t, context.Background(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWalk_MissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")

	var errs []error
	for _, err := range Walk(context.Background(), Options{Root: root, Extension: ".tsx"}) {
		errs = append(errs, err)
	}

	require.Len(t, errs, 1, "missing root should yield exactly one error")
	assert.True(t, status.IsFileSystemError(errs[0]), "error should be a FileSystemError")
}

func TestWalk_RootIsFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file.tsx")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0644))

	_, err := collect(t, context.Background(), Options{Root: root, Extension: ".tsx"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestWalk_StopsEarly(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "A.tsx", "B.tsx", "C.tsx")

	count := 0
	for _, err := range Walk(context.Background(), Options{Root: root, Extension: ".tsx"}) {
		require.NoError(t, err)
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestWalk_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "A.tsx")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := collect(t, ctx, Options{Root: root, Extension: ".tsx"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOptions_Selected(t *testing.T) {
	opts := Options{
		Extension: ".tsx",
		Exclude:   []string{"ThemeContext"},
		Ignore:    []string{"legacy/**"},
	}

	assert.True(t, opts.Selected("screens/HomeScreen.tsx"))
	assert.False(t, opts.Selected("screens/HomeScreen.ts"))
	assert.False(t, opts.Selected("context/ThemeContext.tsx"))
	assert.True(t, opts.Selected("context/ThemeContextProvider.tsx"))
	assert.False(t, opts.Selected("legacy/Old.tsx"))
}
