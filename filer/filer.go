// Package filer is the file system seam used by rollarr.
// Override it to intercept or mock the rename, delete, and open calls the
// rolling logger makes while rotating and pruning log files.
package filer

//go:generate mockgen -destination=../mocks/filer.go -package=mocks golift.io/rollarr/filer Filer
//go:generate mockgen -destination=../mocks/direntry.go -package=mocks os DirEntry

import (
	"os"
	"time"
)

// Filer is used to override file-managing procedures.
type Filer interface {
	Remove(fileName string) error
	Rename(fileName, newPath string) error
	ReadDir(dirPath string) ([]os.DirEntry, error)
	MkdirAll(path string, perm os.FileMode) error
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	Stat(filename string) (*FileInfo, error)
}

// Default returns a Filer interface that works, using default procedures.
func Default() Filer {
	return &File{}
}

// FileInfo contains normal os.FileInfo + file creation time.
// Created by Stat(). Sorry in advance.
type FileInfo struct {
	os.FileInfo
	CreateTime time.Time
}

// File can be embedded in a custom type to provide the missing methods for the Filer interface.
type File struct{}

// Remove provides os.Remove.
func (f *File) Remove(fileName string) error {
	return os.Remove(fileName)
}

// Rename provides os.Rename.
func (f *File) Rename(fileName, newPath string) error {
	return os.Rename(fileName, newPath)
}

// ReadDir provides os.ReadDir. Entries come back sorted by name.
func (f *File) ReadDir(dirname string) ([]os.DirEntry, error) {
	return os.ReadDir(dirname)
}

// MkdirAll provides os.MkdirAll.
func (f *File) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// OpenFile provides os.OpenFile.
func (f *File) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

// Stat provides custom file stats that wrap os.Stat output.
func (f *File) Stat(filename string) (*FileInfo, error) {
	return Stat(filename)
}
