package services

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractorService turns uploaded PDF/DOCX documents into plain text.
type ExtractorService interface {
	ExtractUpload(fh *multipart.FileHeader) (string, error)
	ExtractFile(path string) (string, error)
}

type extractorService struct{}

func NewExtractorService() ExtractorService {
	return &extractorService{}
}

// ExtractUpload implements ExtractorService. It reads the upload in place,
// without spooling it to disk.
func (e *extractorService) ExtractUpload(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	switch ext {
	case ".pdf":
		reader, err := pdf.NewReader(src, fh.Size)
		if err != nil {
			return "", fmt.Errorf("failed to read PDF: %w", err)
		}
		return pdfText(reader)
	case ".docx", ".doc":
		zr, err := zip.NewReader(src, fh.Size)
		if err != nil {
			return "", fmt.Errorf("failed to read DOCX: %w", err)
		}
		return docxText(zr)
	default:
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}
}

// ExtractFile implements ExtractorService.
func (e *extractorService) ExtractFile(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("file does not exist: %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		f, reader, err := pdf.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to open PDF: %w", err)
		}
		defer f.Close()
		return pdfText(reader)
	case ".docx", ".doc":
		zr, err := zip.OpenReader(path)
		if err != nil {
			return "", fmt.Errorf("failed to open DOCX: %w", err)
		}
		defer zr.Close()
		return docxText(&zr.Reader)
	default:
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}
}

func pdfText(reader *pdf.Reader) (string, error) {
	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A bad page should not sink the whole document.
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}
	return text, nil
}

// docxText walks word/document.xml and collects the <w:t> text nodes.
func docxText(zr *zip.Reader) (string, error) {
	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("word/document.xml not found in docx")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open document.xml: %w", err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var sb strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document.xml: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "t" {
			var content string
			if err := decoder.DecodeElement(&content, &se); err == nil {
				sb.WriteString(content)
				sb.WriteString(" ")
			}
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("no text content found in DOCX")
	}
	return text, nil
}

// CleanText normalizes extracted text: trims each line and drops blanks.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
