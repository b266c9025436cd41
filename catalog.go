package main

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"examhub/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	pdfExt    = ".pdf"
	keyMarker = " (Answer Key)"
)

func hasPDFExt(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), pdfExt)
}

// keyBaseName maps an answer-key filename to the exam filename it belongs to
// by stripping the bracketed marker, e.g.
// "Algebra Test (Answer Key).pdf" -> "Algebra Test.pdf".
func keyBaseName(name string) string {
	return strings.ReplaceAll(name, keyMarker, "")
}

// gradeFromFilename extracts the grade label as the second hyphen-delimited
// token ("math-10-midterm.pdf" -> "10"), empty when the name has no hyphen.
// Fragile naming convention kept for compatibility; change it only here.
func gradeFromFilename(name string) string {
	if !strings.Contains(name, "-") {
		return ""
	}
	return strings.Split(name, "-")[1]
}

// listExams returns the PDF filenames in the exam directory, in directory
// order. Listed fresh on every request, no cache.
func (a *App) listExams() ([]string, error) {
	entries, err := os.ReadDir(a.cfg.ExamsDir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && hasPDFExt(e.Name()) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// listAnswerKeys returns the PDF filenames in the key directory plus the
// base-name -> key-filename mapping the UI uses to pair an exam with its key.
// A missing directory yields an empty listing.
func (a *App) listAnswerKeys() ([]string, map[string]string) {
	entries, err := os.ReadDir(a.cfg.KeysDir)
	if err != nil {
		return nil, map[string]string{}
	}
	var names []string
	byBase := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !hasPDFExt(e.Name()) {
			continue
		}
		names = append(names, e.Name())
		byBase[keyBaseName(e.Name())] = e.Name()
	}
	return names, byBase
}

// logPaperEvent makes sure a Paper row exists for filename, creating it on
// first sight with the category and filename-derived grade, then appends a
// History row when user is non-nil. Anonymous events touch the Paper row only.
func (a *App) logPaperEvent(user *models.User, filename, category, event string) error {
	var paper models.Paper
	err := a.db.Where("file_name = ?", filename).First(&paper).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		paper = models.Paper{FileName: filename, Category: category, Grade: gradeFromFilename(filename)}
		if err := a.db.Create(&paper).Error; err != nil {
			if !isUniqueConstraintError(err) {
				return err
			}
			// lost the race to a concurrent first serve
			if err := a.db.Where("file_name = ?", filename).First(&paper).Error; err != nil {
				return err
			}
		}
	} else if err != nil {
		return err
	}

	if user == nil {
		return nil
	}
	row := models.History{UserID: user.ID, PaperID: paper.ID, Event: event, ViewedAt: time.Now()}
	return a.db.Create(&row).Error
}

// servePaper is the shared path behind download and download_key: record the
// event, then stream the file as an attachment. Unknown filenames 404.
func (a *App) servePaper(c *gin.Context, dir, category, filename, event string) {
	name := filepath.Base(filename)
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		c.String(http.StatusNotFound, "file not found")
		return
	}
	user, _ := userFrom(c)
	if err := a.logPaperEvent(user, name, category, event); err != nil {
		c.String(http.StatusInternalServerError, "failed to record event")
		return
	}
	c.FileAttachment(path, name)
}
