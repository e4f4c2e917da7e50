package security_test

import (
	"testing"

	"go-talentmatch-backend/pkg/security"

	"github.com/stretchr/testify/assert"
)

var pdfHead = []byte("%PDF-1.7 some pdf content")

func TestValidateResumeFile(t *testing.T) {
	t.Run("valid PDF", func(t *testing.T) {
		result := security.ValidateResumeFile("resume.pdf", pdfHead, "application/pdf")
		assert.True(t, result.Valid)
		assert.Equal(t, ".pdf", result.Extension)
	})

	t.Run("valid DOCX as zip container", func(t *testing.T) {
		head := []byte{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00}
		result := security.ValidateResumeFile("resume.docx", head, "application/zip")
		assert.True(t, result.Valid)
	})

	t.Run("DOCX detected as octet-stream is allowed", func(t *testing.T) {
		head := []byte{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00}
		result := security.ValidateResumeFile("resume.docx", head, "application/octet-stream")
		assert.True(t, result.Valid)
	})

	t.Run("legacy DOC via OLE signature", func(t *testing.T) {
		head := []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0x00}
		result := security.ValidateResumeFile("resume.doc", head, "application/msword")
		assert.True(t, result.Valid)
	})

	t.Run("executable rejected by extension", func(t *testing.T) {
		result := security.ValidateResumeFile("malware.exe", []byte{0x4D, 0x5A, 0x90, 0x00}, "application/octet-stream")
		assert.False(t, result.Valid)
		assert.Contains(t, result.Error, "only PDF, DOC, and DOCX")
	})

	t.Run("executable renamed to pdf rejected by magic bytes", func(t *testing.T) {
		result := security.ValidateResumeFile("resume.pdf", []byte{0x4D, 0x5A, 0x90, 0x00}, "application/octet-stream")
		assert.False(t, result.Valid)
		assert.Contains(t, result.Error, "spoofing")
	})

	t.Run("PDF detected as octet-stream rejected", func(t *testing.T) {
		result := security.ValidateResumeFile("resume.pdf", pdfHead, "application/octet-stream")
		assert.False(t, result.Valid)
	})

	t.Run("no extension rejected", func(t *testing.T) {
		result := security.ValidateResumeFile("resume", pdfHead, "application/pdf")
		assert.False(t, result.Valid)
	})

	t.Run("truncated file rejected", func(t *testing.T) {
		result := security.ValidateResumeFile("resume.pdf", []byte{0x25}, "application/pdf")
		assert.False(t, result.Valid)
	})
}

func TestValidateFileExtension(t *testing.T) {
	assert.NoError(t, security.ValidateFileExtension("cv.pdf"))
	assert.NoError(t, security.ValidateFileExtension("cv.DOCX"))
	assert.Error(t, security.ValidateFileExtension("cv.exe"))
	assert.Error(t, security.ValidateFileExtension("cv"))
}
