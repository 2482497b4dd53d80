package youtube

import (
	"context"
	"errors"
	"fmt"
	"os"

	"clipcomp/internal/models"
	"clipcomp/internal/utils/logging"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

// ErrPublish indicates the upload itself failed (quota, network). Fatal for
// the run; the counter must not advance.
var ErrPublish = errors.New("youtube upload failed")

const uploadChunkSize = 8 * 1024 * 1024

// Publisher uploads rendered compilations to the authenticated channel.
type Publisher struct {
	Auth Authenticator

	service *ytapi.Service
}

// NewPublisher returns a publisher using the given authenticator.
func NewPublisher(auth Authenticator) *Publisher {
	return &Publisher{Auth: auth}
}

// Authenticate obtains credentials and builds the API service.
func (p *Publisher) Authenticate(ctx context.Context) error {
	client, err := p.Auth.Authenticate(ctx)
	if err != nil {
		return err
	}

	svc, err := ytapi.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return fmt.Errorf("%w: building service: %v", ErrAuthFailed, err)
	}
	p.service = svc

	logging.S("YouTube service ready")
	return nil
}

// Upload performs a resumable upload of the rendered video and returns the
// published video ID. Uploads always land on the authenticated channel.
func (p *Publisher) Upload(ctx context.Context, video *models.RenderedVideo, meta *models.UploadMetadata) (string, error) {
	if p.service == nil {
		return "", fmt.Errorf("%w: not authenticated", ErrAuthFailed)
	}

	f, err := os.Open(video.Path)
	if err != nil {
		return "", fmt.Errorf("%w: opening rendered file: %v", ErrPublish, err)
	}
	defer f.Close()

	upload := &ytapi.Video{
		Snippet: &ytapi.VideoSnippet{
			Title:       meta.Title,
			Description: meta.Description,
			Tags:        meta.Tags,
			CategoryId:  meta.CategoryID,
		},
		Status: &ytapi.VideoStatus{
			PrivacyStatus:           meta.PrivacyStatus,
			SelfDeclaredMadeForKids: false,
			ForceSendFields:         []string{"SelfDeclaredMadeForKids"},
		},
	}

	logging.I("Uploading %q (%.1fs) as %q", video.Path, video.Duration, meta.Title)

	call := p.service.Videos.Insert([]string{"snippet", "status"}, upload).
		Media(f, googleapi.ChunkSize(uploadChunkSize)).
		Context(ctx)

	call.ProgressUpdater(func(current, total int64) {
		if total > 0 {
			logging.D(1, "Uploaded %d%%", current*100/total)
		}
	})

	resp, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPublish, err)
	}
	if resp.Id == "" {
		return "", fmt.Errorf("%w: empty video ID in response", ErrPublish)
	}

	logging.S("Upload successful, video ID: %s", resp.Id)
	return resp.Id, nil
}
