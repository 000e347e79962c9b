package bedrock

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsbedrock "github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/bedrock/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/smithy-go"
	"github.com/rotisserie/eris"
)

// API is the service capability the catalog pipeline depends on. The real
// implementation talks to AWS; tests substitute a mock.
type API interface {
	// ListRegions returns every candidate region name known to the account.
	ListRegions(ctx context.Context) ([]string, error)

	// ListModels returns the foundation models available in one region.
	ListModels(ctx context.Context, region string) ([]ModelSummary, error)

	// ListProfiles returns the inference profiles available in one region.
	ListProfiles(ctx context.Context, region string) ([]ProfileSummary, error)
}

// Client implements API against the AWS SDK.
type Client struct {
	cfg aws.Config
}

// ClientOptions configures NewClient.
type ClientOptions struct {
	// Profile selects a shared-config profile. Empty means the default
	// credential chain (env vars first), matching how CI provides creds.
	Profile string

	// HomeRegion is used for region discovery. Defaults to us-east-1.
	HomeRegion string
}

// NewClient builds a Client from the ambient AWS credential chain.
func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	if opts.HomeRegion == "" {
		opts.HomeRegion = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.HomeRegion),
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(opts.Profile))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, eris.Wrap(err, "bedrock: load aws config")
	}

	return &Client{cfg: cfg}, nil
}

// ListRegions enumerates all regions via EC2 DescribeRegions, including
// opt-in regions that the account has not enabled yet.
func (c *Client) ListRegions(ctx context.Context) ([]string, error) {
	svc := ec2.NewFromConfig(c.cfg)

	out, err := svc.DescribeRegions(ctx, &ec2.DescribeRegionsInput{
		AllRegions: aws.Bool(true),
	})
	if err != nil {
		return nil, eris.Wrap(err, "bedrock: describe regions")
	}

	regions := make([]string, 0, len(out.Regions))
	for _, r := range out.Regions {
		if r.RegionName != nil {
			regions = append(regions, *r.RegionName)
		}
	}
	return regions, nil
}

func (c *Client) regional(region string) *awsbedrock.Client {
	return awsbedrock.NewFromConfig(c.cfg, func(o *awsbedrock.Options) {
		o.Region = region
	})
}

// ListModels fetches the foundation model listing for one region.
func (c *Client) ListModels(ctx context.Context, region string) ([]ModelSummary, error) {
	out, err := c.regional(region).ListFoundationModels(ctx, &awsbedrock.ListFoundationModelsInput{})
	if err != nil {
		return nil, eris.Wrapf(err, "bedrock: list foundation models in %s", region)
	}

	models := make([]ModelSummary, 0, len(out.ModelSummaries))
	for _, s := range out.ModelSummaries {
		models = append(models, fromModelSummary(s))
	}
	return models, nil
}

// ListProfiles fetches the inference profile listing for one region,
// following pagination to completion.
func (c *Client) ListProfiles(ctx context.Context, region string) ([]ProfileSummary, error) {
	svc := c.regional(region)

	var profiles []ProfileSummary
	var nextToken *string
	for {
		out, err := svc.ListInferenceProfiles(ctx, &awsbedrock.ListInferenceProfilesInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, eris.Wrapf(err, "bedrock: list inference profiles in %s", region)
		}
		for _, s := range out.InferenceProfileSummaries {
			profiles = append(profiles, fromProfileSummary(s))
		}
		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return profiles, nil
}

// IsServiceError reports whether err is an AWS provider or transport error,
// i.e. the class of failure that means "this region does not support the
// service" rather than a bug. Anything else is unexpected.
func IsServiceError(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return true
	}
	var opErr *smithy.OperationError
	return errors.As(err, &opErr)
}

func fromModelSummary(s types.FoundationModelSummary) ModelSummary {
	m := ModelSummary{
		ModelArn:                   aws.ToString(s.ModelArn),
		ModelID:                    aws.ToString(s.ModelId),
		ModelName:                  aws.ToString(s.ModelName),
		ProviderName:               aws.ToString(s.ProviderName),
		ResponseStreamingSupported: s.ResponseStreamingSupported,
	}
	for _, v := range s.InputModalities {
		m.InputModalities = append(m.InputModalities, string(v))
	}
	for _, v := range s.OutputModalities {
		m.OutputModalities = append(m.OutputModalities, string(v))
	}
	for _, v := range s.CustomizationsSupported {
		m.CustomizationsSupported = append(m.CustomizationsSupported, string(v))
	}
	for _, v := range s.InferenceTypesSupported {
		m.InferenceTypesSupported = append(m.InferenceTypesSupported, string(v))
	}
	if s.ModelLifecycle != nil {
		m.ModelLifecycle.Status = string(s.ModelLifecycle.Status)
	}
	return m
}

func fromProfileSummary(s types.InferenceProfileSummary) ProfileSummary {
	p := ProfileSummary{
		InferenceProfileArn:  aws.ToString(s.InferenceProfileArn),
		InferenceProfileID:   aws.ToString(s.InferenceProfileId),
		InferenceProfileName: aws.ToString(s.InferenceProfileName),
		Description:          aws.ToString(s.Description),
		Status:               string(s.Status),
		Type:                 string(s.Type),
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
	for _, m := range s.Models {
		p.Models = append(p.Models, ProfileModel{ModelArn: aws.ToString(m.ModelArn)})
	}
	return p
}
