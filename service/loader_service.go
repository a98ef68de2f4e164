package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/tieubaoca/rag-be/config"
	"github.com/tieubaoca/rag-be/types"
)

// ErrDataDirNotFound means the ingestion directory does not exist.
var ErrDataDirNotFound = errors.New("data directory not found")

// LoaderService reads raw documents from a directory, dispatching by
// file extension. A file that fails to parse is logged and skipped so
// one corrupted input cannot abort a whole batch.
type LoaderService struct {
	csvSourceColumn string
	logger          *zap.Logger
}

func NewLoaderService(cfg *config.Config, logger *zap.Logger) *LoaderService {
	return &LoaderService{
		csvSourceColumn: cfg.CSVSourceColumn,
		logger:          logger,
	}
}

// Load scans the directory for supported files (.pdf, .csv, .txt) and
// returns their contents as documents. Zero documents is an empty slice,
// not an error; callers decide whether that aborts ingestion.
func (s *LoaderService) Load(directory string) ([]types.Document, error) {
	info, err := os.Stat(directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDataDirNotFound, directory)
		}
		return nil, fmt.Errorf("checking data directory %s: %w", directory, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDataDirNotFound, directory)
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("reading data directory %s: %w", directory, err)
	}

	docs := make([]types.Document, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(directory, entry.Name())

		var (
			loaded  []types.Document
			loadErr error
		)
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".pdf":
			loaded, loadErr = s.loadPDF(path)
		case ".csv":
			loaded, loadErr = s.loadCSV(path)
		case ".txt":
			loaded, loadErr = s.loadText(path)
		default:
			continue
		}
		if loadErr != nil {
			s.logger.Warn("skipping unreadable file",
				zap.String("file", path),
				zap.Error(loadErr))
			continue
		}
		docs = append(docs, loaded...)
	}

	s.logger.Info("loaded documents",
		zap.String("directory", directory),
		zap.Int("documents", len(docs)))
	return docs, nil
}

// loadPDF returns one document per page. Unreadable pages are skipped,
// matching the per-file policy one level down.
func (s *LoaderService) loadPDF(path string) ([]types.Document, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	defer file.Close()

	totalPages := reader.NumPage()
	docs := make([]types.Document, 0, totalPages)
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			s.logger.Warn("failed to extract pdf page",
				zap.String("file", path),
				zap.Int("page", pageNum),
				zap.Error(err))
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		docs = append(docs, types.Document{
			Content: text,
			Metadata: map[string]string{
				types.MetaSource:     path,
				types.MetaPage:       strconv.Itoa(pageNum),
				types.MetaTotalPages: strconv.Itoa(totalPages),
			},
		})
	}
	return docs, nil
}

// loadCSV returns one document per row, rendered as "header: value"
// lines. The designated source column is mapped into the source
// metadata field so results can report it directly.
func (s *LoaderService) loadCSV(path string) ([]types.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	if len(records) < 2 {
		return []types.Document{}, nil
	}

	header := records[0]
	sourceIdx := -1
	for i, column := range header {
		if strings.EqualFold(strings.TrimSpace(column), s.csvSourceColumn) {
			sourceIdx = i
			break
		}
	}

	docs := make([]types.Document, 0, len(records)-1)
	for i, row := range records[1:] {
		var content strings.Builder
		for j, value := range row {
			if j >= len(header) {
				break
			}
			content.WriteString(header[j])
			content.WriteString(": ")
			content.WriteString(value)
			content.WriteString("\n")
		}

		source := path
		if sourceIdx >= 0 && sourceIdx < len(row) && strings.TrimSpace(row[sourceIdx]) != "" {
			source = row[sourceIdx]
		}
		docs = append(docs, types.Document{
			Content: strings.TrimRight(content.String(), "\n"),
			Metadata: map[string]string{
				types.MetaSource: source,
				types.MetaRow:    strconv.Itoa(i),
			},
		})
	}
	return docs, nil
}

func (s *LoaderService) loadText(path string) ([]types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading text file: %w", err)
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return []types.Document{}, nil
	}
	return []types.Document{{
		Content:  content,
		Metadata: map[string]string{types.MetaSource: path},
	}}, nil
}
