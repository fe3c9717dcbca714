package ringtext

import (
	"bufio"
	"os"
	"sort"

	"github.com/unixpickle/model3d/model3d"
)

// ExportSTL writes the final solid to path in the canonical binary STL
// layout: an 80-byte header, a little-endian uint32 triangle count,
// then per triangle a float32 normal, three float32 vertices, and a
// 2-byte attribute field. Millimeter units.
//
// The write is atomic: the mesh is encoded to a temporary file in the
// destination directory and renamed into place, so a failed pass never
// leaves a partial file. Triangles are emitted in a canonical order,
// making identical passes produce byte-identical files.
func ExportSTL(path string, mesh *model3d.Mesh) error {
	const op = "export"

	tris := canonicalTriangles(mesh)

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return resourceError(op, err)
	}
	if err := writeAndSync(f, tris); err != nil {
		f.Close()
		os.Remove(tmp)
		return resourceError(op, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return resourceError(op, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return resourceError(op, err)
	}
	return nil
}

func writeAndSync(f *os.File, tris []*model3d.Triangle) error {
	w := bufio.NewWriter(f)
	if err := model3d.WriteSTL(w, tris); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Sync()
}

// canonicalTriangles extracts the mesh's triangles in a deterministic
// order. Mesh containers iterate in hash order, which would make
// exports of identical passes differ byte-for-byte.
func canonicalTriangles(mesh *model3d.Mesh) []*model3d.Triangle {
	var tris []*model3d.Triangle
	mesh.Iterate(func(t *model3d.Triangle) {
		tris = append(tris, t)
	})
	sort.Slice(tris, func(i, j int) bool {
		return triangleLess(tris[i], tris[j])
	})
	return tris
}

func triangleLess(a, b *model3d.Triangle) bool {
	for i := 0; i < 3; i++ {
		if c := coordCompare(a[i], b[i]); c != 0 {
			return c < 0
		}
	}
	return false
}

func coordCompare(a, b model3d.Coord3D) int {
	for _, pair := range [3][2]float64{{a.X, b.X}, {a.Y, b.Y}, {a.Z, b.Z}} {
		if pair[0] < pair[1] {
			return -1
		} else if pair[0] > pair[1] {
			return 1
		}
	}
	return 0
}
