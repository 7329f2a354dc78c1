package v1

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"

	"github.com/luminapower/propdeck/internal/api/dto"
	"github.com/luminapower/propdeck/internal/config"
	"github.com/luminapower/propdeck/internal/domain/deck"
	ierr "github.com/luminapower/propdeck/internal/errors"
	"github.com/luminapower/propdeck/internal/logger"
	"github.com/luminapower/propdeck/internal/service"
)

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

type ProposalHandler struct {
	service service.ProposalService
	opener  deck.Opener
	cfg     *config.Configuration
	log     *logger.Logger
}

func NewProposalHandler(service service.ProposalService, opener deck.Opener, cfg *config.Configuration, log *logger.Logger) *ProposalHandler {
	return &ProposalHandler{service: service, opener: opener, cfg: cfg, log: log}
}

// @Summary Render a proposal deck
// @Description Fill the uploaded deck template with the client's computed figures and return the rendered deck
// @Tags Proposals
// @Accept multipart/form-data
// @Produce application/vnd.openxmlformats-officedocument.presentationml.presentation
// @Param template formData file true "Deck template (.pptx)"
// @Param client_name formData string true "Client name"
// @Param discount_percent formData number true "Discount percent (0-100)"
// @Param connection_type formData string true "single-phase | two-phase | three-phase"
// @Param monthly_consumption_kwh formData number true "Average monthly consumption in kWh"
// @Param unit_count formData integer true "Number of consumer units"
// @Param public_illumination_cost formData number true "Monthly public illumination charge"
// @Param format query string false "Set to 'json' to get the render report instead of the deck"
// @Success 200 {file} binary
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /proposals/render [post]
func (h *ProposalHandler) RenderProposal(c *gin.Context) {
	maxBytes := h.cfg.Render.MaxUploadSizeMB << 20
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

	var req dto.RenderProposalRequest
	if err := c.ShouldBind(&req); err != nil {
		h.log.Error("Failed to bind render request", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	template, err := h.readTemplate(c)
	if err != nil {
		c.Error(err)
		return
	}

	doc, err := h.opener.Open(template)
	if err != nil {
		h.log.Error("Failed to open deck template", "error", err)
		c.Error(err)
		return
	}

	result, err := h.service.Render(c.Request.Context(), req.ToClientInput(), doc)
	if err != nil {
		h.log.Error("Failed to render proposal", "error", err)
		c.Error(err)
		return
	}

	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, dto.RenderProposalResponse{
			ProposalID: result.ProposalID,
			Report:     result.Report,
			Before:     result.Before,
			After:      result.After,
		})
		return
	}

	c.Header("X-Proposal-ID", result.ProposalID)
	c.Header("X-Updated-Shapes", fmt.Sprintf("%d", result.Report.UpdatedShapes))
	c.Header("X-Skipped-Shapes", fmt.Sprintf("%d", len(result.Report.SkippedShapes)))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="proposta-%s.pptx"`, result.ProposalID))
	c.Data(http.StatusOK, pptxContentType, result.Deck)
}

// readTemplate pulls the uploaded template file and verifies it is an OOXML
// presentation container before handing it to the opener
func (h *ProposalHandler) readTemplate(c *gin.Context) ([]byte, error) {
	fileHeader, err := c.FormFile("template")
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("A deck template file is required in the 'template' field").
			Mark(ierr.ErrValidation)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to read the uploaded template").
			Mark(ierr.ErrInternal)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to read the uploaded template").
			Mark(ierr.ErrInternal)
	}

	// pptx is a zip container; generic zips are accepted because filetype
	// cannot always see the OOXML content types from the header alone
	kind, _ := filetype.Match(data)
	if kind != matchers.TypePptx && kind != matchers.TypeZip {
		return nil, ierr.NewError("uploaded template is not a pptx file").
			WithHint("The template must be a PowerPoint (.pptx) file").
			WithReportableDetails(map[string]any{
				"detected_type": kind.MIME.Value,
				"filename":      fileHeader.Filename,
			}).
			Mark(ierr.ErrValidation)
	}

	return data, nil
}
