package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/cobra"

	"github.com/captavi/lambda-s3-deploy/internal/client"
	"github.com/captavi/lambda-s3-deploy/internal/packaging"
	"github.com/captavi/lambda-s3-deploy/internal/repository"
	"github.com/captavi/lambda-s3-deploy/internal/service"
	"github.com/captavi/lambda-s3-deploy/pkg/types"
)

type deployOptions struct {
	bucket          string
	function        string
	roleArn         string
	region          string
	prefix          string
	suffix          string
	snsTopicArn     string
	slackWebhookURL string
	file            string
	runtime         string
	handler         string
	memorySize      int32
	timeout         int32
	retentionDays   int32
	policyARNs      []string
}

// newDeployCmd creates the "deploy" subcommand.
func newDeployCmd() *cobra.Command {
	var opts deployOptions

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Package, upsert the function and attach the S3 trigger",
		Long: `Deploy zips the handler file, creates the Lambda function (or updates its
code and configuration when it already exists), grants s3.amazonaws.com
permission to invoke it and registers an ObjectCreated rule on the bucket.

Examples:
    lambda-s3-deploy deploy --bucket reports --function ingest \
        --role-arn arn:aws:iam::123456789012:role/ingest-role \
        --suffix .csv --file lambda_function.py

When --role-arn is omitted, an execution role named
"<function>-execution-role" is created with basic execution permissions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.bucket, "bucket", "", "S3 bucket name")
	cmd.Flags().StringVar(&opts.function, "function", "", "Lambda function name")
	cmd.Flags().StringVar(&opts.roleArn, "role-arn", "", "IAM role ARN for Lambda execution (created when omitted)")
	cmd.Flags().StringVar(&opts.region, "region", os.Getenv("AWS_REGION"), "AWS region")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "Optional S3 key prefix filter")
	cmd.Flags().StringVar(&opts.suffix, "suffix", "", "Optional S3 key suffix filter, e.g. .csv")
	cmd.Flags().StringVar(&opts.snsTopicArn, "sns-topic-arn", "", "Passed to the function as SNS_TOPIC_ARN")
	cmd.Flags().StringVar(&opts.slackWebhookURL, "slack-webhook-url", "", "Passed to the function as SLACK_WEBHOOK_URL")
	cmd.Flags().StringVar(&opts.file, "file", "lambda_function.py", "Path to the handler file")
	cmd.Flags().StringVar(&opts.runtime, "runtime", "python3.12", "Lambda runtime")
	cmd.Flags().StringVar(&opts.handler, "handler", "lambda_function.lambda_handler", "Handler entry point")
	cmd.Flags().Int32Var(&opts.memorySize, "memory", 256, "Memory size in MB")
	cmd.Flags().Int32Var(&opts.timeout, "timeout", 30, "Timeout in seconds")
	cmd.Flags().Int32Var(&opts.retentionDays, "log-retention-days", 14, "CloudWatch log group retention")
	cmd.Flags().StringSliceVar(&opts.policyARNs, "policy-arn", nil, "Extra policy ARNs attached to a managed role")

	cmd.MarkFlagRequired("bucket")
	cmd.MarkFlagRequired("function")

	return cmd
}

// runDeploy validates the handler file, packages it and runs the deployment
// sequence. The file check happens before any AWS client is built so that a
// missing file never touches the provider.
func runDeploy(ctx context.Context, opts *deployOptions) error {
	if _, err := os.Stat(opts.file); err != nil {
		return fmt.Errorf("missing %s", opts.file)
	}

	code, err := packaging.Archive(opts.file)
	if err != nil {
		return err
	}

	awsClient, err := client.New(ctx, opts.region)
	if err != nil {
		return err
	}

	deployment := newDeploymentService(awsClient, opts.retentionDays)

	env := map[string]string{}
	if opts.snsTopicArn != "" {
		env["SNS_TOPIC_ARN"] = opts.snsTopicArn
	}
	if opts.slackWebhookURL != "" {
		env["SLACK_WEBHOOK_URL"] = opts.slackWebhookURL
	}

	state, err := deployment.EnsureDeployment(ctx,
		&types.LambdaConfig{
			FunctionName: opts.function,
			Runtime:      opts.runtime,
			Handler:      opts.handler,
			ZipPath:      opts.file,
			MemorySize:   opts.memorySize,
			Timeout:      opts.timeout,
			RoleArn:      opts.roleArn,
			PolicyARNs:   opts.policyARNs,
			Environment:  env,
		},
		&types.TriggerConfig{
			Bucket: opts.bucket,
			Prefix: opts.prefix,
			Suffix: opts.suffix,
		},
		code,
	)
	if err != nil {
		return err
	}

	fmt.Println("Done.")
	fmt.Println("Lambda ARN:", aws.ToString(state.FunctionArn))
	fmt.Printf("S3 bucket %q now triggers %q on ObjectCreated events.\n", state.Bucket, state.FunctionName)
	return nil
}

// newDeploymentService wires repositories and services around an AWSClient.
func newDeploymentService(awsClient *client.AWSClient, retentionDays int32) *service.DeploymentService {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	return &service.DeploymentService{
		IAMService: &service.IAMService{
			IAMRepo: &repository.IAMRepository{Client: awsClient.IAM},
			Logger:  logger,
		},
		CWLogsService: &service.CWLogsService{
			CWLogsRepo: &repository.CWLogsRepository{Client: awsClient.CWLogs},
		},
		TriggerService: &service.TriggerService{
			S3Repo: &repository.S3Repository{Client: awsClient.S3},
		},
		LambdaRepo:       &repository.LambdaRepository{Client: awsClient.Lambda},
		AccountID:        awsClient.AccountID,
		Logger:           logger,
		LogRetentionDays: retentionDays,
	}
}
