package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"examhub/models"

	"github.com/gin-gonic/gin"
)

func (a *App) setupRoutes(r *gin.Engine) {
	r.Use(a.currentUser())

	r.GET("/", a.indexPage)
	r.GET("/signup", a.signupPage)
	r.POST("/signup", a.signupSubmit)
	r.GET("/login", a.loginPage)
	r.POST("/login", a.loginSubmit)
	r.GET("/download/:filename", a.downloadExam)
	r.GET("/view/:filename", a.viewExam)
	r.GET("/tutors", a.tutorsPage)
	r.GET("/become_tutor", a.becomeTutorPage)
	r.POST("/become_tutor", a.becomeTutorSubmit)
	r.GET("/upload_exams", a.uploadExamsPage)
	r.POST("/upload_exams", a.uploadExamsSubmit)
	r.POST("/ask", a.ask)
	r.GET("/api/tutors", a.apiTutors)
	r.GET("/answer_keys", a.answerKeysPage)

	authed := r.Group("")
	authed.Use(a.requireAuth())
	authed.GET("/logout", a.logout)
	authed.GET("/history", a.historyPage)
	authed.GET("/download_key/:filename", a.downloadKey)
}

func (a *App) indexPage(c *gin.Context) {
	exams, err := a.listExams()
	if err != nil {
		log.Printf("listing exams: %v", err)
		c.String(http.StatusInternalServerError, "exam catalog unavailable")
		return
	}
	_, keysByBase := a.listAnswerKeys()
	c.HTML(http.StatusOK, "index.html", a.pageData(c, gin.H{
		"ExamFiles":      exams,
		"AnswerKeyFiles": keysByBase,
	}))
}

func (a *App) signupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", a.pageData(c, nil))
}

func (a *App) signupSubmit(c *gin.Context) {
	var form struct {
		Email    string `form:"email" binding:"required"`
		Name     string `form:"name" binding:"required"`
		Password string `form:"password" binding:"required"`
	}
	if err := c.ShouldBind(&form); err != nil {
		setFlash(c, "error", "All fields are required")
		c.Redirect(http.StatusFound, "/signup")
		return
	}
	user, err := a.registerUser(form.Email, form.Name, form.Password)
	if err == errDuplicateEmail {
		setFlash(c, "error", "E-mail already registered")
		c.Redirect(http.StatusFound, "/signup")
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "signup failed")
		return
	}
	if err := a.startSession(c, user); err != nil {
		c.String(http.StatusInternalServerError, "signup failed")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (a *App) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", a.pageData(c, nil))
}

func (a *App) loginSubmit(c *gin.Context) {
	var form struct {
		Email    string `form:"email" binding:"required"`
		Password string `form:"password" binding:"required"`
	}
	if err := c.ShouldBind(&form); err == nil {
		if user, err := a.authenticate(form.Email, form.Password); err == nil {
			if err := a.startSession(c, user); err != nil {
				c.String(http.StatusInternalServerError, "login failed")
				return
			}
			c.Redirect(http.StatusFound, "/")
			return
		}
	}
	// generic message, never say which field was wrong
	c.HTML(http.StatusOK, "login.html", a.pageData(c, gin.H{
		"Flash": gin.H{"Level": "error", "Message": "Wrong credentials"},
	}))
}

func (a *App) logout(c *gin.Context) {
	a.endSession(c)
	c.Redirect(http.StatusFound, "/")
}

// historyPage shows the current user's 15 most recent events, newest first.
func (a *App) historyPage(c *gin.Context) {
	user, _ := userFrom(c)
	var rows []models.History
	err := a.db.Where("user_id = ?", user.ID).
		Order("viewed_at desc").
		Limit(15).
		Preload("Paper").
		Find(&rows).Error
	if err != nil {
		c.String(http.StatusInternalServerError, "history unavailable")
		return
	}
	c.HTML(http.StatusOK, "history.html", a.pageData(c, gin.H{"Rows": rows}))
}

func (a *App) downloadExam(c *gin.Context) {
	a.servePaper(c, a.cfg.ExamsDir, models.CategoryExam, c.Param("filename"), models.EventDownload)
}

func (a *App) downloadKey(c *gin.Context) {
	a.servePaper(c, a.cfg.KeysDir, models.CategoryKey, c.Param("filename"), models.EventDownload)
}

// viewExam logs the hit like a download would, then renders the inline viewer
// page instead of streaming bytes.
func (a *App) viewExam(c *gin.Context) {
	name := filepath.Base(c.Param("filename"))
	if _, err := os.Stat(filepath.Join(a.cfg.ExamsDir, name)); err != nil {
		c.String(http.StatusNotFound, "file not found")
		return
	}
	user, _ := userFrom(c)
	if err := a.logPaperEvent(user, name, models.CategoryExam, models.EventView); err != nil {
		c.String(http.StatusInternalServerError, "failed to record event")
		return
	}
	c.HTML(http.StatusOK, "view_exam.html", a.pageData(c, gin.H{"Filename": name}))
}

func (a *App) tutorsPage(c *gin.Context) {
	c.HTML(http.StatusOK, "tutors.html", a.pageData(c, nil))
}

func (a *App) becomeTutorPage(c *gin.Context) {
	c.HTML(http.StatusOK, "become_tutor.html", a.pageData(c, nil))
}

func (a *App) becomeTutorSubmit(c *gin.Context) {
	var form struct {
		Name          string `form:"name" binding:"required"`
		Location      string `form:"location" binding:"required"`
		School        string `form:"school" binding:"required"`
		HourlyRate    string `form:"hourly_rate" binding:"required"`
		Experience    string `form:"experience" binding:"required"`
		ClassesTaught string `form:"classes_taught" binding:"required"`
		Phone         string `form:"phone"`
		Email         string `form:"email" binding:"required"`
		CVBio         string `form:"cv_bio"`
		ProfileBio    string `form:"profile_bio" binding:"required"`
	}
	if err := c.ShouldBind(&form); err != nil {
		setFlash(c, "error", "Please fill in all required fields")
		c.Redirect(http.StatusFound, "/become_tutor")
		return
	}
	row := models.TutorApplication{
		Name:          form.Name,
		Location:      form.Location,
		School:        form.School,
		HourlyRate:    form.HourlyRate,
		Experience:    form.Experience,
		ClassesTaught: form.ClassesTaught,
		Phone:         form.Phone,
		Email:         form.Email,
		CVBio:         form.CVBio,
		ProfileBio:    form.ProfileBio,
	}
	if err := a.db.Create(&row).Error; err != nil {
		c.String(http.StatusInternalServerError, "failed to save application")
		return
	}
	setFlash(c, "success", "Application submitted!")
	c.Redirect(http.StatusFound, "/tutors")
}

func (a *App) uploadExamsPage(c *gin.Context) {
	c.HTML(http.StatusOK, "upload_exams.html", a.pageData(c, nil))
}

// uploadExamsSubmit mails the submitted PDF to the configured recipient. The
// file is not added to the catalog; a human acts on the email.
func (a *App) uploadExamsSubmit(c *gin.Context) {
	fh, err := c.FormFile("exam_pdf")
	if err != nil || !hasPDFExt(fh.Filename) {
		setFlash(c, "error", "Please upload a valid PDF file.")
		c.Redirect(http.StatusFound, "/upload_exams")
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to read upload")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to read upload")
		return
	}
	msg := Message{
		To:      []string{a.cfg.MailUsername},
		Subject: "New exam uploaded",
		Body:    "User uploaded: " + fh.Filename,
		Attachments: []Attachment{{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		}},
	}
	if err := a.mail.Send(msg); err != nil {
		log.Printf("sending upload notification: %v", err)
		c.String(http.StatusInternalServerError, "mail delivery failed")
		return
	}
	setFlash(c, "success", "Thank you! Your file has been sent to the team.")
	c.Redirect(http.StatusFound, "/")
}

// ask proxies a free-text question to the completion service.
func (a *App) ask(c *gin.Context) {
	var req struct {
		Query string `json:"query"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No query provided"})
		return
	}
	answer, err := a.ai.Ask(c.Request.Context(), req.Query)
	if err != nil {
		log.Printf("completion request: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "completion service error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// apiTutors dumps every application as JSON. Intentionally left without auth
// to preserve current behavior; it exposes applicant contact details to any
// caller, which is an open product question.
func (a *App) apiTutors(c *gin.Context) {
	var rows []models.TutorApplication
	if err := a.db.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (a *App) answerKeysPage(c *gin.Context) {
	keys, _ := a.listAnswerKeys()
	c.HTML(http.StatusOK, "answer_keys.html", a.pageData(c, gin.H{"Keys": keys}))
}
