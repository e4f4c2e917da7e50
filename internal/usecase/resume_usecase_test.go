package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-talentmatch-backend/internal/domain"
	"go-talentmatch-backend/internal/usecase"
	"go-talentmatch-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func uploadInput() domain.UploadInput {
	return domain.UploadInput{
		UserID:    "user-1",
		UserName:  "Jane Doe",
		UserEmail: "jane@example.com",
		AuthToken: "token",
		LocalPath: "/tmp/resume.pdf",
		FileName:  "resume.pdf",
	}
}

func TestUploadPipelineStopsOnStorageFailure(t *testing.T) {
	store := new(MockStore)
	parser := new(MockParser)
	resumeRepo := new(MockResumeRepo)
	candidateRepo := new(MockCandidateRepo)
	profiles := new(MockProfiles)
	uc := usecase.NewResumeUsecase(resumeRepo, candidateRepo, store, parser, profiles)

	store.On("Upload", mock.Anything, "/tmp/resume.pdf", "resume.pdf").
		Return("", "", errors.New("bucket unreachable"))

	_, err := uc.Upload(context.Background(), uploadInput())
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Failed to upload resume", appErr.Message)

	parser.AssertNotCalled(t, "ParseResume", mock.Anything, mock.Anything)
	resumeRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUploadPipelineStopsOnParseFailure(t *testing.T) {
	store := new(MockStore)
	parser := new(MockParser)
	resumeRepo := new(MockResumeRepo)
	candidateRepo := new(MockCandidateRepo)
	profiles := new(MockProfiles)
	uc := usecase.NewResumeUsecase(resumeRepo, candidateRepo, store, parser, profiles)

	store.On("Upload", mock.Anything, mock.Anything, mock.Anything).
		Return("https://bucket/resumes/abc.pdf", "resumes/abc.pdf", nil)
	parser.On("ParseResume", mock.Anything, "https://bucket/resumes/abc.pdf").
		Return(nil, errors.New("ai service down"))

	_, err := uc.Upload(context.Background(), uploadInput())
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Failed to parse resume with AI service", appErr.Message)

	// No candidate is created for an upload that could not be parsed
	candidateRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	resumeRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUploadCreatesCandidateLazily(t *testing.T) {
	store := new(MockStore)
	parser := new(MockParser)
	resumeRepo := new(MockResumeRepo)
	candidateRepo := new(MockCandidateRepo)
	profiles := new(MockProfiles)
	uc := usecase.NewResumeUsecase(resumeRepo, candidateRepo, store, parser, profiles)

	store.On("Upload", mock.Anything, mock.Anything, mock.Anything).
		Return("https://bucket/resumes/abc.pdf", "resumes/abc.pdf", nil)
	parser.On("ParseResume", mock.Anything, mock.Anything).
		Return(&domain.ParsedResume{Skills: []string{"Go", "SQL"}}, nil)
	candidateRepo.On("GetByUserID", mock.Anything, "user-1").Return(nil, nil)
	candidateRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Candidate")).
		Return(nil).
		Run(func(args mock.Arguments) {
			c := args.Get(1).(*domain.Candidate)
			c.ID = "cand-1"
			assert.Equal(t, "Jane Doe", c.Name)
			assert.Equal(t, "jane@example.com", c.Email)
		})
	resumeRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Resume")).
		Return(nil).
		Run(func(args mock.Arguments) {
			r := args.Get(1).(*domain.Resume)
			r.ID = "res-1"
			assert.Equal(t, "cand-1", r.CandidateID)
			assert.Equal(t, []string{"Go", "SQL"}, r.Parsed.Skills)
			require.NotNil(t, r.ParsedAt)
		})
	candidateRepo.On("Touch", mock.Anything, "cand-1").Return(nil)

	out, err := uc.Upload(context.Background(), uploadInput())
	require.NoError(t, err)
	assert.Equal(t, "res-1", out.ResumeID)
	assert.Equal(t, []string{"Go", "SQL"}, out.Parsed.Skills)

	// Claims carried a full identity, so the identity service is not consulted
	profiles.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestUploadFallsBackToIdentityServiceThenPlaceholders(t *testing.T) {
	store := new(MockStore)
	parser := new(MockParser)
	resumeRepo := new(MockResumeRepo)
	candidateRepo := new(MockCandidateRepo)
	profiles := new(MockProfiles)
	uc := usecase.NewResumeUsecase(resumeRepo, candidateRepo, store, parser, profiles)

	store.On("Upload", mock.Anything, mock.Anything, mock.Anything).
		Return("https://bucket/r.pdf", "r.pdf", nil)
	parser.On("ParseResume", mock.Anything, mock.Anything).
		Return(&domain.ParsedResume{Skills: []string{}}, nil)
	candidateRepo.On("GetByUserID", mock.Anything, "user-1").Return(nil, nil)
	candidateRepo.On("Touch", mock.Anything, mock.Anything).Return(nil)
	resumeRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	t.Run("identity service fills missing claims", func(t *testing.T) {
		profiles.On("Fetch", mock.Anything, "token").
			Return(&domain.IdentityProfile{Name: "From Auth", Email: "auth@example.com"}, nil).Once()
		candidateRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Candidate")).
			Return(nil).Once().
			Run(func(args mock.Arguments) {
				c := args.Get(1).(*domain.Candidate)
				assert.Equal(t, "From Auth", c.Name)
				assert.Equal(t, "auth@example.com", c.Email)
			})

		in := uploadInput()
		in.UserName = ""
		in.UserEmail = ""
		_, err := uc.Upload(context.Background(), in)
		require.NoError(t, err)
	})

	t.Run("placeholders when identity service fails too", func(t *testing.T) {
		profiles.On("Fetch", mock.Anything, "token").
			Return(nil, errors.New("auth service down")).Once()
		candidateRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Candidate")).
			Return(nil).Once().
			Run(func(args mock.Arguments) {
				c := args.Get(1).(*domain.Candidate)
				assert.Equal(t, domain.PlaceholderName, c.Name)
				assert.Equal(t, domain.PlaceholderEmail, c.Email)
			})

		in := uploadInput()
		in.UserName = ""
		in.UserEmail = ""
		_, err := uc.Upload(context.Background(), in)
		require.NoError(t, err)
	})
}

// Real emails are unique per candidate, but the placeholder is exempt: two
// anonymous uploads with the auth service down must both go through instead
// of tripping a uniqueness error on unknown@example.com.
func TestUploadPlaceholderEmailMayRepeat(t *testing.T) {
	store := new(MockStore)
	parser := new(MockParser)
	resumeRepo := new(MockResumeRepo)
	candidateRepo := new(MockCandidateRepo)
	profiles := new(MockProfiles)
	uc := usecase.NewResumeUsecase(resumeRepo, candidateRepo, store, parser, profiles)

	store.On("Upload", mock.Anything, mock.Anything, mock.Anything).
		Return("https://bucket/r.pdf", "r.pdf", nil)
	parser.On("ParseResume", mock.Anything, mock.Anything).
		Return(&domain.ParsedResume{}, nil)
	profiles.On("Fetch", mock.Anything, "token").
		Return(nil, errors.New("auth service down"))
	candidateRepo.On("GetByUserID", mock.Anything, mock.Anything).Return(nil, nil)
	candidateRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Candidate")).
		Return(nil).
		Run(func(args mock.Arguments) {
			c := args.Get(1).(*domain.Candidate)
			c.ID = "cand-" + c.UserID
			assert.Equal(t, domain.PlaceholderEmail, c.Email)
		})
	resumeRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	candidateRepo.On("Touch", mock.Anything, mock.Anything).Return(nil)

	for _, userID := range []string{"user-a", "user-b"} {
		in := uploadInput()
		in.UserID = userID
		in.UserName = ""
		in.UserEmail = ""
		_, err := uc.Upload(context.Background(), in)
		require.NoError(t, err)
	}
	candidateRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestUploadBackfillsPlaceholderProfile(t *testing.T) {
	store := new(MockStore)
	parser := new(MockParser)
	resumeRepo := new(MockResumeRepo)
	candidateRepo := new(MockCandidateRepo)
	profiles := new(MockProfiles)
	uc := usecase.NewResumeUsecase(resumeRepo, candidateRepo, store, parser, profiles)

	store.On("Upload", mock.Anything, mock.Anything, mock.Anything).
		Return("https://bucket/r.pdf", "r.pdf", nil)
	parser.On("ParseResume", mock.Anything, mock.Anything).
		Return(&domain.ParsedResume{}, nil)
	candidateRepo.On("GetByUserID", mock.Anything, "user-1").Return(&domain.Candidate{
		ID:    "cand-1",
		Name:  domain.PlaceholderName,
		Email: domain.PlaceholderEmail,
	}, nil)
	candidateRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Candidate")).
		Return(nil).
		Run(func(args mock.Arguments) {
			c := args.Get(1).(*domain.Candidate)
			assert.Equal(t, "Jane Doe", c.Name)
			assert.Equal(t, "jane@example.com", c.Email)
		})
	resumeRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	candidateRepo.On("Touch", mock.Anything, "cand-1").Return(nil)

	_, err := uc.Upload(context.Background(), uploadInput())
	require.NoError(t, err)
	candidateRepo.AssertCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUploadSurvivesTouchFailure(t *testing.T) {
	store := new(MockStore)
	parser := new(MockParser)
	resumeRepo := new(MockResumeRepo)
	candidateRepo := new(MockCandidateRepo)
	profiles := new(MockProfiles)
	uc := usecase.NewResumeUsecase(resumeRepo, candidateRepo, store, parser, profiles)

	store.On("Upload", mock.Anything, mock.Anything, mock.Anything).
		Return("https://bucket/r.pdf", "r.pdf", nil)
	parser.On("ParseResume", mock.Anything, mock.Anything).
		Return(&domain.ParsedResume{}, nil)
	candidateRepo.On("GetByUserID", mock.Anything, "user-1").Return(&domain.Candidate{
		ID: "cand-1", Name: "Jane Doe", Email: "jane@example.com",
	}, nil)
	resumeRepo.On("Create", mock.Anything, mock.Anything).Return(nil).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Resume).ID = "res-1"
		})
	candidateRepo.On("Touch", mock.Anything, "cand-1").Return(errors.New("deadlock"))

	// The resume row is durable, so a failed link update is not an error
	out, err := uc.Upload(context.Background(), uploadInput())
	require.NoError(t, err)
	assert.Equal(t, "res-1", out.ResumeID)
}
