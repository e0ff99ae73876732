// internal/service/invitation.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/surveyhive/surveyhive/internal/audit"
	"github.com/surveyhive/surveyhive/internal/config"
	"github.com/surveyhive/surveyhive/internal/domain"
	"github.com/surveyhive/surveyhive/internal/email"
	"github.com/surveyhive/surveyhive/internal/email/mailer"
	"github.com/surveyhive/surveyhive/internal/model"
	"github.com/surveyhive/surveyhive/internal/rbac"
	"github.com/surveyhive/surveyhive/internal/repository"
)

// InvitationService issues and redeems both invitation kinds: offers to
// join an organization with a role, and offers to respond to a survey.
// It only generates and validates tokens; message formatting and
// delivery live in the email service.
type InvitationService struct {
	invitations  repository.InvitationRepositoryIface
	orgs         repository.OrganizationRepositoryIface
	surveys      repository.SurveyRepositoryIface
	projects     repository.ProjectRepositoryIface
	resolver     *rbac.Resolver
	emailService *email.Service
	auditor      audit.Logger
	config       *config.Config
	validate     *validator.Validate
}

func NewInvitationService(
	invitations repository.InvitationRepositoryIface,
	orgs repository.OrganizationRepositoryIface,
	surveys repository.SurveyRepositoryIface,
	projects repository.ProjectRepositoryIface,
	resolver *rbac.Resolver,
	emailService *email.Service,
	auditor audit.Logger,
	cfg *config.Config,
) *InvitationService {
	return &InvitationService{
		invitations:  invitations,
		orgs:         orgs,
		surveys:      surveys,
		projects:     projects,
		resolver:     resolver,
		emailService: emailService,
		auditor:      auditor,
		config:       cfg,
		validate:     validator.New(),
	}
}

type InviteToOrganizationInput struct {
	Email string     `json:"email" validate:"required,email"`
	Role  model.Role `json:"role" validate:"required"`
}

// InviteToOrganization creates a pending organization invitation and
// sends the tokenized link; admin only.
func (s *InvitationService) InviteToOrganization(ctx context.Context, actor *model.User, orgID uuid.UUID, input InviteToOrganizationInput) (*model.OrgInvitation, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !input.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	org, err := s.orgs.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	err = rbac.Authorize(ctx, actor, rbac.PermEdit, org, func(ctx context.Context) (bool, error) {
		return s.resolver.CanEditOrganization(ctx, actor, org.ID)
	})
	if err != nil {
		return nil, logDenied(ctx, s.auditor, org, err)
	}

	inv := &model.OrgInvitation{
		OrganizationID: org.ID,
		Email:          input.Email,
		Role:           input.Role,
		InvitedByID:    actor.ID,
		InviteToken:    model.NewInviteToken(s.config.Invitations.OrgTTL),
	}

	if err := s.invitations.CreateOrgInvitation(ctx, inv); err != nil {
		return nil, err
	}

	acceptLink := fmt.Sprintf("%s/invitations/accept?key=%s", s.config.BaseURL, inv.Key)
	if err := mailer.SendOrgInvitationEmail(s.emailService, inv.Email, org.Name, acceptLink); err != nil {
		return nil, fmt.Errorf("sending invitation email: %w", err)
	}

	return inv, nil
}

// AcceptOrgInvitation redeems the key for the accepting user. The key is
// consumed exactly once; the membership add is idempotent, so accepting
// an invitation to an organization the user already belongs to succeeds
// and leaves the existing membership untouched.
func (s *InvitationService) AcceptOrgInvitation(ctx context.Context, user *model.User, key string) (*model.Membership, error) {
	if user.IsAnonymous() {
		return nil, domain.ErrUnauthorized
	}

	inv, err := s.invitations.FindOrgInvitationByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if inv.Consumed() {
		return nil, domain.ErrInvitationUsed
	}
	if inv.Expired(now) {
		return nil, domain.ErrInvitationExpired
	}

	membership := &model.Membership{
		OrganizationID: inv.OrganizationID,
		UserID:         user.ID,
		Role:           inv.Role,
		AddedByID:      inv.InvitedByID,
	}

	// Consume and membership add commit together; if the add fails the
	// key stays redeemable and the user can retry.
	err = s.invitations.RedeemOrgInvitation(ctx, inv.ID, now, membership)
	if errors.Is(err, domain.ErrDuplicateMembership) {
		// Already a member: the redeem rolled back, so consume the key
		// on its own and keep the existing membership.
		existing, gerr := s.orgs.GetMembership(ctx, user.ID, inv.OrganizationID)
		if gerr != nil {
			return nil, gerr
		}
		if cerr := s.invitations.ConsumeOrgInvitation(ctx, inv.ID, now); cerr != nil && !errors.Is(cerr, domain.ErrInvitationUsed) {
			return nil, cerr
		}
		return existing, nil
	}
	if err != nil {
		return nil, err
	}

	return membership, nil
}

type InviteParticipantInput struct {
	Email string `json:"email" validate:"required,email"`
}

// InviteParticipant issues a survey response token for one participant;
// requires edit capability on the survey's project.
func (s *InvitationService) InviteParticipant(ctx context.Context, actor *model.User, surveyID uuid.UUID, input InviteParticipantInput) (*model.SurveyInvitation, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	survey, err := s.surveys.FindByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	err = rbac.Authorize(ctx, actor, rbac.PermEdit, survey, func(ctx context.Context) (bool, error) {
		return s.resolver.CanEditSurvey(ctx, actor, survey)
	})
	if err != nil {
		return nil, logDenied(ctx, s.auditor, survey, err)
	}

	inv := &model.SurveyInvitation{
		SurveyID:    survey.ID,
		Email:       input.Email,
		InvitedByID: actor.ID,
		InviteToken: model.NewInviteToken(s.config.Invitations.SurveyTTL),
	}

	if err := s.invitations.CreateSurveyInvitation(ctx, inv); err != nil {
		return nil, err
	}

	respondLink := fmt.Sprintf("%s/respond?key=%s", s.config.BaseURL, inv.Key)
	if err := mailer.SendSurveyInvitationEmail(s.emailService, inv.Email, survey.Name, respondLink); err != nil {
		return nil, fmt.Errorf("sending invitation email: %w", err)
	}

	return inv, nil
}
