// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package bundle

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/samber/oops"
)

// writeArchive zips srcDir into dst with every entry under prefix/.
// An existing archive at dst is replaced.
func writeArchive(srcDir, dst, prefix string) (err error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil { //nolint:gosec // release dir is world readable
		return errFilesystem(dst, err)
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return errFilesystem(dst, err)
	}

	f, err := os.Create(dst) //nolint:gosec // destination is the release dir
	if err != nil {
		return errFilesystem(dst, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errFilesystem(dst, cerr)
		}
	}()

	zw := zip.NewWriter(f)
	walkErr := filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		hdr.Name = path.Join(prefix, filepath.ToSlash(rel))
		if d.IsDir() {
			hdr.Name += "/"
			_, err := zw.CreateHeader(hdr)
			return err
		}
		hdr.Method = zip.Deflate
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return err
		}
		return copyInto(w, p)
	})
	if walkErr != nil {
		_ = zw.Close()
		return oops.Code(CodeArchiveFailed).With("path", dst).Wrapf(walkErr, "archive %s", dst)
	}
	if err := zw.Close(); err != nil {
		return oops.Code(CodeArchiveFailed).With("path", dst).Wrap(err)
	}
	return nil
}

func copyInto(w io.Writer, p string) error {
	in, err := os.Open(p) //nolint:gosec // path is inside the output tree
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()
	_, err = io.Copy(w, in)
	return err
}
