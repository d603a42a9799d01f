package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/captavi/lambda-s3-deploy/internal/client"
)

// newDestroyCmd creates the "destroy" subcommand, the inverse of deploy.
func newDestroyCmd() *cobra.Command {
	var (
		bucket     string
		function   string
		region     string
		deleteRole bool
	)

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Remove the trigger, permission and function",
		Long: `Destroy removes the bucket notification rule targeting the function, the
invoke permission, the function itself and its log group. With --delete-role
the managed "<function>-execution-role" is deleted as well.

Cleanup keeps going past individual failures and reports them at the end.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDestroy(cmd.Context(), bucket, function, region, deleteRole)
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket name")
	cmd.Flags().StringVar(&function, "function", "", "Lambda function name")
	cmd.Flags().StringVar(&region, "region", os.Getenv("AWS_REGION"), "AWS region")
	cmd.Flags().BoolVar(&deleteRole, "delete-role", false, "Also delete the managed execution role")

	cmd.MarkFlagRequired("bucket")
	cmd.MarkFlagRequired("function")

	return cmd
}

func runDestroy(ctx context.Context, bucket, function, region string, deleteRole bool) error {
	awsClient, err := client.New(ctx, region)
	if err != nil {
		return err
	}

	deployment := newDeploymentService(awsClient, 0)

	if err := deployment.DeleteDeployment(ctx, function, bucket, deleteRole); err != nil {
		return err
	}

	fmt.Printf("S3 bucket %q no longer triggers %q.\n", bucket, function)
	return nil
}
