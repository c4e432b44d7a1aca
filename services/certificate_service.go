package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/anjiri1684/peer_tutor/configs"
	"github.com/anjiri1684/peer_tutor/database"
	"github.com/anjiri1684/peer_tutor/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const certificateCompletionCount = 10

// CheckAndGenerateCertificate issues a subject-completion certificate once a
// student reaches ten completed sessions in one subject with one tutor.
func CheckAndGenerateCertificate(session models.Session) {
	var completedCount int64
	database.DB.Model(&models.Session{}).
		Where("student_id = ? AND tutor_id = ? AND subject = ? AND status = ?",
			session.StudentID, session.TutorID, session.Subject, models.SessionCompleted).
		Count(&completedCount)

	if completedCount < certificateCompletionCount {
		return
	}

	var student, tutor models.User
	if err := database.DB.First(&student, "id = ?", session.StudentID).Error; err != nil {
		log.Printf("🔥 Failed to load student for certificate: %v", err)
		return
	}
	if err := database.DB.First(&tutor, "id = ?", session.TutorID).Error; err != nil {
		log.Printf("🔥 Failed to load tutor for certificate: %v", err)
		return
	}

	title := fmt.Sprintf("%s with %s - %d Sessions", session.Subject, tutor.FullName, certificateCompletionCount)

	var existingCert models.Certificate
	if err := database.DB.Where("student_id = ? AND title = ?", session.StudentID, title).First(&existingCert).Error; err == nil {
		return
	}

	htmlData, err := generateCertificateHTML(student.FullName, tutor.FullName, title)
	if err != nil {
		log.Printf("🔥 Failed to generate certificate HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate PDF: %v", err)
		return
	}

	uploadURL, err := uploadToCloudinary(pdfBytes, session.StudentID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload certificate to Cloudinary: %v", err)
		return
	}

	newCertificate := models.Certificate{
		StudentID:      session.StudentID,
		TutorID:        session.TutorID,
		Subject:        session.Subject,
		Title:          title,
		CompletionDate: time.Now(),
		CertificateURL: uploadURL,
	}

	if err := database.DB.Create(&newCertificate).Error; err != nil {
		log.Printf("🔥 Failed to create certificate record for student %s: %v", session.StudentID, err)
	} else {
		log.Printf("✅ Generated and uploaded certificate '%s' for student %s.", title, session.StudentID)
	}
}

func generateCertificateHTML(studentName, tutorName, title string) (string, error) {
	tmpl, err := template.ParseFiles("templates/certificate.html")
	if err != nil {
		return "", err
	}

	data := struct {
		StudentName    string
		TutorName      string
		Title          string
		CompletionDate string
	}{
		StudentName:    studentName,
		TutorName:      tutorName,
		Title:          title,
		CompletionDate: time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadToCloudinary(fileBytes []byte, studentID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("certificates/%s_%s", studentID, uuid.New().String()),
		Folder:       "peer_tutor_certificates",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
