package notifier

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/charmbracelet/log"
	"github.com/habithub/habithub-api/internal/models"
)

// EmailSender is the part of *sesv2.Client the notifier uses.
type EmailSender interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type EmailNotifier struct {
	client     EmailSender
	fromEmail  string
	fromName   string
	appBaseURL string
}

func NewEmailNotifier(client EmailSender, fromEmail, fromName, appBaseURL string) *EmailNotifier {
	return &EmailNotifier{
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
	}
}

// NewSESClient loads the default AWS credential chain for region.
func NewSESClient(ctx context.Context, region string) (*sesv2.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return sesv2.NewFromConfig(cfg), nil
}

func (n *EmailNotifier) NotifyAchievement(ctx context.Context, user models.User, achievement models.Achievement) error {
	subject := fmt.Sprintf("Achievement unlocked: %s", achievement.Name)
	body := fmt.Sprintf("Hi %s,\n\nYou unlocked \"%s\": %s\nReward: +%d XP\n\nSee all your achievements at %s/achievements\n",
		displayName(user), achievement.Name, achievement.Description, achievement.XPReward, n.appBaseURL)
	return n.send(ctx, user.Email, subject, body)
}

func (n *EmailNotifier) NotifyLevelUp(ctx context.Context, user models.User, level int) error {
	subject := fmt.Sprintf("You reached level %d", level)
	body := fmt.Sprintf("Hi %s,\n\nKeep it up, you just reached level %d.\n\n%s\n", displayName(user), level, n.appBaseURL)
	return n.send(ctx, user.Email, subject, body)
}

func (n *EmailNotifier) send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return nil
	}

	from := n.fromEmail
	if n.fromName != "" {
		from = fmt.Sprintf("%s <%s>", n.fromName, n.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(body),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := n.client.SendEmail(ctx, input); err != nil {
		log.Error("Failed to send email", "to", to, "err", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
