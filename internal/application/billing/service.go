package billing

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogapp "inaltera/ms_sionver_dashboard/internal/application/catalog"
	"inaltera/ms_sionver_dashboard/internal/core/billing"
	"inaltera/ms_sionver_dashboard/internal/core/sealing"
	"inaltera/ms_sionver_dashboard/internal/infrastructure/session"
)

// draftSession is the per-user composition state: the owned draft, the staged
// PDF for the upload path, and the intake workflow phase. All access goes
// through the session mutex; the draft itself is never handed out.
type draftSession struct {
	mu     sync.Mutex
	draft  *billing.Draft
	staged *sealing.Upload
	status WorkflowStatus
}

// Service owns the invoice composition and document intake use cases. Each
// authenticated subject gets one session holding one draft and at most one
// staged upload; submissions run the Validating -> Submitting workflow with
// a single in-flight run per session.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*draftSession

	sealer  sealing.Sealer
	catalog *catalogapp.Service
	log     *slog.Logger
}

func NewService(sealer sealing.Sealer, catalog *catalogapp.Service, log *slog.Logger) *Service {
	return &Service{
		sessions: make(map[string]*draftSession),
		sealer:   sealer,
		catalog:  catalog,
		log:      log,
	}
}

func (s *Service) session(ctx context.Context) *draftSession {
	subject := session.Subject(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[subject]
	if !ok {
		sess = &draftSession{
			draft:  billing.NewDraft(),
			status: WorkflowStatus{State: StateIdle},
		}
		s.sessions[subject] = sess
	}
	return sess
}

// Draft returns the current draft snapshot with derived totals.
func (s *Service) Draft(ctx context.Context) billing.Snapshot {
	sess := s.session(ctx)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.draft.Snapshot()
}

// ResetDraft discards the draft and starts a fresh one.
func (s *Service) ResetDraft(ctx context.Context) billing.Snapshot {
	sess := s.session(ctx)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.draft = billing.NewDraft()
	sess.status = WorkflowStatus{State: StateIdle}
	return sess.draft.Snapshot()
}

// SetClient sets the draft's counterparty reference.
func (s *Service) SetClient(ctx context.Context, clientRef string) billing.Snapshot {
	sess := s.session(ctx)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.draft.ClientRef = clientRef
	return sess.draft.Snapshot()
}

// SetNotes sets the draft's free-text notes.
func (s *Service) SetNotes(ctx context.Context, notes string) billing.Snapshot {
	sess := s.session(ctx)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.draft.Notes = notes
	return sess.draft.Snapshot()
}

// AddLine appends a blank line to the draft.
func (s *Service) AddLine(ctx context.Context) billing.Snapshot {
	sess := s.session(ctx)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.draft.AddLine()
	return sess.draft.Snapshot()
}

// RemoveLine removes a line; removing the last remaining line is rejected.
func (s *Service) RemoveLine(ctx context.Context, lineID uuid.UUID) (billing.Snapshot, error) {
	sess := s.session(ctx)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	err := sess.draft.RemoveLine(lineID)
	return sess.draft.Snapshot(), err
}

// SetLineDescription updates a line's description.
func (s *Service) SetLineDescription(ctx context.Context, lineID uuid.UUID, description string) (billing.Snapshot, error) {
	sess := s.session(ctx)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	err := sess.draft.SetDescription(lineID, description)
	return sess.draft.Snapshot(), err
}

// SetLineQuantity updates a line's quantity; invalid values are rejected and
// the line keeps its previous value.
func (s *Service) SetLineQuantity(ctx context.Context, lineID uuid.UUID, quantity int) (billing.Snapshot, error) {
	sess := s.session(ctx)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	err := sess.draft.SetQuantity(lineID, quantity)
	return sess.draft.Snapshot(), err
}

// SetLineUnitPrice updates a line's unit price; negatives are rejected.
func (s *Service) SetLineUnitPrice(ctx context.Context, lineID uuid.UUID, price decimal.Decimal) (billing.Snapshot, error) {
	sess := s.session(ctx)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	err := sess.draft.SetUnitPrice(lineID, price)
	return sess.draft.Snapshot(), err
}

// SetLineTaxRate updates a line's VAT bracket; out-of-bracket rates are rejected.
func (s *Service) SetLineTaxRate(ctx context.Context, lineID uuid.UUID, rate billing.TaxRate) (billing.Snapshot, error) {
	sess := s.session(ctx)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	err := sess.draft.SetTaxRate(lineID, rate)
	return sess.draft.Snapshot(), err
}

// SelectProduct resolves a catalog product and fills the line with its name
// and list price. An unknown product is rejected without touching the line.
func (s *Service) SelectProduct(ctx context.Context, lineID uuid.UUID, productID string) (billing.Snapshot, error) {
	product, found, err := s.catalog.FindProduct(ctx, productID)

	sess := s.session(ctx)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err != nil {
		return sess.draft.Snapshot(), err
	}
	if !found {
		return sess.draft.Snapshot(), billing.ErrProductNotFound
	}
	applyErr := sess.draft.ApplyProduct(lineID, product.ID, product.Name, product.UnitPrice)
	return sess.draft.Snapshot(), applyErr
}

// Status returns the session's current workflow state.
func (s *Service) Status(ctx context.Context) WorkflowStatus {
	sess := s.session(ctx)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.status
}

// SubmitDraft runs the compose-path intake workflow: validate the draft,
// submit it for sealing, and on success discard it for a fresh one. On any
// failure the draft is preserved exactly as submitted so the user can fix
// and retry.
func (s *Service) SubmitDraft(ctx context.Context) (*sealing.Receipt, error) {
	sess := s.session(ctx)

	sess.mu.Lock()
	if sess.status.State == StateSubmitting || sess.status.State == StateValidating {
		sess.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}

	sess.status = WorkflowStatus{State: StateValidating}
	if verr := sess.draft.Validate(); verr != nil {
		// Validation failures never enter Submitting: the workflow drops back
		// to Idle with the field messages and the draft is left untouched.
		sess.status = WorkflowStatus{State: StateIdle, Errors: verr.Fields}
		sess.mu.Unlock()
		return nil, verr
	}

	emission := sealing.NewEmission(sess.draft.Snapshot())
	sess.status = WorkflowStatus{State: StateSubmitting}
	sess.mu.Unlock()

	receipt, err := s.sealer.EmitInvoice(ctx, emission)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err != nil {
		s.log.Warn("invoice submission failed", "error", err)
		sess.status = WorkflowStatus{State: StateFailed, Errors: []string{err.Error()}}
		return nil, err
	}

	s.log.Info("invoice sealed", "document_id", receipt.DocumentID)
	sess.draft = billing.NewDraft()
	sess.status = WorkflowStatus{State: StateSucceeded, DocumentID: receipt.DocumentID}
	return receipt, nil
}

// StagePDF stages an uploaded file for the upload path. Non-PDF content is
// rejected and any previously staged file is kept.
func (s *Service) StagePDF(ctx context.Context, filename string, content []byte) (*sealing.Upload, error) {
	upload, err := sealing.NewUpload(filename, content)
	if err != nil {
		return nil, err
	}

	sess := s.session(ctx)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.staged = upload
	return upload, nil
}

// StagedPDF returns the currently staged upload, if any.
func (s *Service) StagedPDF(ctx context.Context) *sealing.Upload {
	sess := s.session(ctx)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.staged
}

// ClearPDF drops the staged upload without submitting it.
func (s *Service) ClearPDF(ctx context.Context) {
	sess := s.session(ctx)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.staged = nil
}

// SubmitPDF runs the upload-path intake workflow on the staged file. The
// staged upload is cleared only on success; a failed run keeps it so the
// user can retry without re-selecting the file.
func (s *Service) SubmitPDF(ctx context.Context) (*sealing.Receipt, error) {
	sess := s.session(ctx)

	sess.mu.Lock()
	if sess.status.State == StateSubmitting || sess.status.State == StateValidating {
		sess.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}

	sess.status = WorkflowStatus{State: StateValidating}
	if sess.staged == nil {
		sess.status = WorkflowStatus{State: StateIdle, Errors: []string{"Selecciona un archivo PDF"}}
		sess.mu.Unlock()
		return nil, ErrNoUploadStaged
	}

	upload := *sess.staged
	sess.status = WorkflowStatus{State: StateSubmitting}
	sess.mu.Unlock()

	receipt, err := s.sealer.SealPDF(ctx, upload)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err != nil {
		s.log.Warn("PDF submission failed", "filename", upload.Filename, "error", err)
		sess.status = WorkflowStatus{State: StateFailed, Errors: []string{err.Error()}}
		return nil, err
	}

	s.log.Info("PDF sealed", "document_id", receipt.DocumentID, "filename", upload.Filename)
	sess.staged = nil
	sess.status = WorkflowStatus{State: StateSucceeded, DocumentID: receipt.DocumentID}
	return receipt, nil
}
