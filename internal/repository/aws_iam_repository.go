package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	iam "github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
)

// IAMRepository encapsula operações IAM de baixo nível.
type IAMRepository struct {
	Client IAMAPI
}

// GetRole busca uma Role IAM. Retorna nil, nil se não for encontrada.
func (r *IAMRepository) GetRole(ctx context.Context, roleName string) (*iamtypes.Role, error) {
	out, err := r.Client.GetRole(ctx, &iam.GetRoleInput{RoleName: aws.String(roleName)})
	if err != nil {
		if isAPIErrorCode(err, "NoSuchEntity") {
			return nil, nil
		}
		return nil, fmt.Errorf("GetRole failed: %w", err)
	}
	return out.Role, nil
}

// CreateRole cria a Role com a política de confiança Lambda.
func (r *IAMRepository) CreateRole(ctx context.Context, roleName string) (*string, error) {
	assume := `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"Service":"lambda.amazonaws.com"},"Action":"sts:AssumeRole"}]}`

	cr, cerr := r.Client.CreateRole(ctx, &iam.CreateRoleInput{
		RoleName:                 aws.String(roleName),
		AssumeRolePolicyDocument: aws.String(assume),
	})
	if cerr != nil {
		if isAPIErrorCode(cerr, "EntityAlreadyExists") {
			got, _ := r.GetRole(ctx, roleName)
			if got != nil {
				return got.Arn, nil
			}
		}
		return nil, fmt.Errorf("CreateRole failed: %w", cerr)
	}

	return cr.Role.Arn, nil
}

// AttachPolicy anexa uma política à Role.
func (r *IAMRepository) AttachPolicy(ctx context.Context, roleName, policyArn string) error {
	_, err := r.Client.AttachRolePolicy(ctx, &iam.AttachRolePolicyInput{
		RoleName:  aws.String(roleName),
		PolicyArn: aws.String(policyArn),
	})
	if err != nil && !isAPIErrorCode(err, "EntityAlreadyExists") {
		return fmt.Errorf("AttachPolicy failed: %w", err)
	}
	return nil
}

// DetachPolicy desanexa uma política da Role.
func (r *IAMRepository) DetachPolicy(ctx context.Context, roleName, policyArn string) error {
	_, err := r.Client.DetachRolePolicy(ctx, &iam.DetachRolePolicyInput{
		RoleName:  aws.String(roleName),
		PolicyArn: aws.String(policyArn),
	})
	if err != nil && !isAPIErrorCode(err, "NoSuchEntity") {
		return fmt.Errorf("DetachPolicy failed: %w", err)
	}
	return nil
}

// DeleteRole deleta a Role.
func (r *IAMRepository) DeleteRole(ctx context.Context, roleName string) error {
	_, err := r.Client.DeleteRole(ctx, &iam.DeleteRoleInput{RoleName: aws.String(roleName)})
	if err != nil && !isAPIErrorCode(err, "NoSuchEntity") {
		return fmt.Errorf("DeleteRole failed: %w", err)
	}
	return nil
}
