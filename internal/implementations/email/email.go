package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"

	"signon/internal/core/domain/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type Sender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender                string
	passwordResetTemplate string
	passwordResetBaseURL  url.URL
}

func NewSender(
	awsConfig aws.Config,
	sender string,
	passwordResetTemplate string,
	passwordResetBaseURL url.URL,
) *Sender {
	return &Sender{
		ses:                   ses.NewFromConfig(awsConfig),
		sender:                sender,
		passwordResetTemplate: passwordResetTemplate,
		passwordResetBaseURL:  passwordResetBaseURL,
	}
}

// SendToken delivers the reset link. The plaintext token travels only here,
// as a path segment of the link; it is never written anywhere else.
func (s *Sender) SendToken(ctx context.Context, u user.User, token user.PasswordResetToken) error {
	if u.Email == "" {
		return errors.New("user email is not defined")
	}

	templateParamsBytes, err := json.Marshal(
		passwordResetTemplateParams{
			Name:             u.Name,
			PasswordResetURL: s.passwordResetBaseURL.JoinPath(string(token)).String(),
		},
	)
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	email := string(u.Email)
	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Template:     &s.passwordResetTemplate,
			TemplateData: &templateParams,
		},
	)
	return err
}

type passwordResetTemplateParams struct {
	Name             string `json:"name"`
	PasswordResetURL string `json:"passwordResetUrl"`
}
