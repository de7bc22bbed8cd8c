package handlers

import (
	"strings"

	"github.com/SundayYogurt/placement_service/internal/dto"
	"github.com/SundayYogurt/placement_service/internal/helper/utils"
	"github.com/SundayYogurt/placement_service/internal/services"
	pkgutils "github.com/SundayYogurt/placement_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

const maxResumeSize = 2 * 1024 * 1024 // 2MB of plain text is plenty for a resume

type StudentHandler struct {
	svc services.PlacementService
}

func NewStudentHandler(svc services.PlacementService) *StudentHandler {
	return &StudentHandler{svc: svc}
}

func (h *StudentHandler) SetupRoutes(app *fiber.App) {
	app.Get("/students", h.ListStudents)
	app.Get("/students/:id", h.GetStudent)
	app.Post("/students", h.CreateStudent)
	app.Post("/upload-resume", h.UploadResume)
	app.Get("/eligibility/:student_id", h.Eligibility)
}

func (h *StudentHandler) ListStudents(ctx *fiber.Ctx) error {
	students, err := h.svc.ListStudents()
	if err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	return ctx.JSON(students)
}

func (h *StudentHandler) GetStudent(ctx *fiber.Ctx) error {
	student, err := h.svc.GetStudent(ctx.Params("id"))
	if err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	return ctx.JSON(student)
}

func (h *StudentHandler) CreateStudent(ctx *fiber.Ctx) error {
	var requestBody dto.CreateStudentRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	student, err := h.svc.CreateStudent(requestBody)
	if err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(student)
}

// UploadResume takes either a JSON body {student_id, resume_text} or a
// multipart form with a plain-text "file" field next to "student_id".
func (h *StudentHandler) UploadResume(ctx *fiber.Ctx) error {
	studentID, resumeText, err := parseResumeUpload(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	resp, err := h.svc.UploadResume(studentID, resumeText)
	if err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	return ctx.JSON(resp)
}

func parseResumeUpload(ctx *fiber.Ctx) (string, string, error) {
	if strings.HasPrefix(ctx.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		studentID := ctx.FormValue("student_id")
		file, err := ctx.FormFile("file")
		if err != nil {
			return "", "", fiber.NewError(fiber.StatusBadRequest, "file is required")
		}
		f, err := file.Open()
		if err != nil {
			return "", "", fiber.NewError(fiber.StatusBadRequest, "cannot open uploaded file")
		}
		defer f.Close()

		b, err := pkgutils.ReadAllLimit(f, maxResumeSize)
		if err != nil {
			return "", "", fiber.NewError(fiber.StatusBadRequest, "file too large (max 2MB)")
		}
		return studentID, string(b), nil
	}

	var requestBody dto.UploadResumeRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "student_id and resume_text are required")
	}
	return requestBody.StudentID, requestBody.ResumeText, nil
}

func (h *StudentHandler) Eligibility(ctx *fiber.Ctx) error {
	resp, err := h.svc.Eligibility(ctx.Params("student_id"))
	if err != nil {
		return utils.ResponseDomainError(ctx, err)
	}
	return ctx.JSON(resp)
}
