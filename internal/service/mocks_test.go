package service

import (
	"context"

	cw "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	iam "github.com/aws/aws-sdk-go-v2/service/iam"
	lambda "github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	s3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// Mocks das interfaces de API usadas pelos repositórios. Campos nil têm um
// comportamento padrão inofensivo para que cada teste configure só o que
// interessa.

type mockS3API struct {
	GetFunc func(ctx context.Context, params *s3.GetBucketNotificationConfigurationInput, optFns ...func(*s3.Options)) (*s3.GetBucketNotificationConfigurationOutput, error)
	PutFunc func(ctx context.Context, params *s3.PutBucketNotificationConfigurationInput, optFns ...func(*s3.Options)) (*s3.PutBucketNotificationConfigurationOutput, error)

	putCalls []*s3.PutBucketNotificationConfigurationInput
}

func (m *mockS3API) GetBucketNotificationConfiguration(ctx context.Context, params *s3.GetBucketNotificationConfigurationInput, optFns ...func(*s3.Options)) (*s3.GetBucketNotificationConfigurationOutput, error) {
	if m.GetFunc == nil {
		return &s3.GetBucketNotificationConfigurationOutput{}, nil
	}
	return m.GetFunc(ctx, params, optFns...)
}

func (m *mockS3API) PutBucketNotificationConfiguration(ctx context.Context, params *s3.PutBucketNotificationConfigurationInput, optFns ...func(*s3.Options)) (*s3.PutBucketNotificationConfigurationOutput, error) {
	m.putCalls = append(m.putCalls, params)
	if m.PutFunc == nil {
		return &s3.PutBucketNotificationConfigurationOutput{}, nil
	}
	return m.PutFunc(ctx, params, optFns...)
}

type mockIAMAPI struct {
	GetRoleFunc    func(ctx context.Context, params *iam.GetRoleInput, optFns ...func(*iam.Options)) (*iam.GetRoleOutput, error)
	CreateRoleFunc func(ctx context.Context, params *iam.CreateRoleInput, optFns ...func(*iam.Options)) (*iam.CreateRoleOutput, error)

	attached []string
	detached []string
	deleted  []string
}

func (m *mockIAMAPI) GetRole(ctx context.Context, params *iam.GetRoleInput, optFns ...func(*iam.Options)) (*iam.GetRoleOutput, error) {
	return m.GetRoleFunc(ctx, params, optFns...)
}

func (m *mockIAMAPI) CreateRole(ctx context.Context, params *iam.CreateRoleInput, optFns ...func(*iam.Options)) (*iam.CreateRoleOutput, error) {
	return m.CreateRoleFunc(ctx, params, optFns...)
}

func (m *mockIAMAPI) AttachRolePolicy(ctx context.Context, params *iam.AttachRolePolicyInput, optFns ...func(*iam.Options)) (*iam.AttachRolePolicyOutput, error) {
	m.attached = append(m.attached, *params.PolicyArn)
	return &iam.AttachRolePolicyOutput{}, nil
}

func (m *mockIAMAPI) DetachRolePolicy(ctx context.Context, params *iam.DetachRolePolicyInput, optFns ...func(*iam.Options)) (*iam.DetachRolePolicyOutput, error) {
	m.detached = append(m.detached, *params.PolicyArn)
	return &iam.DetachRolePolicyOutput{}, nil
}

func (m *mockIAMAPI) DeleteRole(ctx context.Context, params *iam.DeleteRoleInput, optFns ...func(*iam.Options)) (*iam.DeleteRoleOutput, error) {
	m.deleted = append(m.deleted, *params.RoleName)
	return &iam.DeleteRoleOutput{}, nil
}

type mockCWLogsAPI struct {
	created   []string
	retention map[string]int32
	deleted   []string
}

func (m *mockCWLogsAPI) CreateLogGroup(ctx context.Context, params *cw.CreateLogGroupInput, optFns ...func(*cw.Options)) (*cw.CreateLogGroupOutput, error) {
	m.created = append(m.created, *params.LogGroupName)
	return &cw.CreateLogGroupOutput{}, nil
}

func (m *mockCWLogsAPI) PutRetentionPolicy(ctx context.Context, params *cw.PutRetentionPolicyInput, optFns ...func(*cw.Options)) (*cw.PutRetentionPolicyOutput, error) {
	if m.retention == nil {
		m.retention = map[string]int32{}
	}
	m.retention[*params.LogGroupName] = *params.RetentionInDays
	return &cw.PutRetentionPolicyOutput{}, nil
}

func (m *mockCWLogsAPI) DeleteLogGroup(ctx context.Context, params *cw.DeleteLogGroupInput, optFns ...func(*cw.Options)) (*cw.DeleteLogGroupOutput, error) {
	m.deleted = append(m.deleted, *params.LogGroupName)
	return &cw.DeleteLogGroupOutput{}, nil
}

type mockLambdaAPI struct {
	GetFunctionFunc                 func(ctx context.Context, params *lambda.GetFunctionInput, optFns ...func(*lambda.Options)) (*lambda.GetFunctionOutput, error)
	CreateFunctionFunc              func(ctx context.Context, params *lambda.CreateFunctionInput, optFns ...func(*lambda.Options)) (*lambda.CreateFunctionOutput, error)
	UpdateFunctionCodeFunc          func(ctx context.Context, params *lambda.UpdateFunctionCodeInput, optFns ...func(*lambda.Options)) (*lambda.UpdateFunctionCodeOutput, error)
	UpdateFunctionConfigurationFunc func(ctx context.Context, params *lambda.UpdateFunctionConfigurationInput, optFns ...func(*lambda.Options)) (*lambda.UpdateFunctionConfigurationOutput, error)
	AddPermissionFunc               func(ctx context.Context, params *lambda.AddPermissionInput, optFns ...func(*lambda.Options)) (*lambda.AddPermissionOutput, error)

	removedStatements []string
	deletedFunctions  []string
}

func (m *mockLambdaAPI) GetFunction(ctx context.Context, params *lambda.GetFunctionInput, optFns ...func(*lambda.Options)) (*lambda.GetFunctionOutput, error) {
	return m.GetFunctionFunc(ctx, params, optFns...)
}

func (m *mockLambdaAPI) GetFunctionConfiguration(ctx context.Context, params *lambda.GetFunctionConfigurationInput, optFns ...func(*lambda.Options)) (*lambda.GetFunctionConfigurationOutput, error) {
	return &lambda.GetFunctionConfigurationOutput{State: lambdatypes.StateActive}, nil
}

func (m *mockLambdaAPI) CreateFunction(ctx context.Context, params *lambda.CreateFunctionInput, optFns ...func(*lambda.Options)) (*lambda.CreateFunctionOutput, error) {
	return m.CreateFunctionFunc(ctx, params, optFns...)
}

func (m *mockLambdaAPI) UpdateFunctionCode(ctx context.Context, params *lambda.UpdateFunctionCodeInput, optFns ...func(*lambda.Options)) (*lambda.UpdateFunctionCodeOutput, error) {
	if m.UpdateFunctionCodeFunc == nil {
		return &lambda.UpdateFunctionCodeOutput{}, nil
	}
	return m.UpdateFunctionCodeFunc(ctx, params, optFns...)
}

func (m *mockLambdaAPI) UpdateFunctionConfiguration(ctx context.Context, params *lambda.UpdateFunctionConfigurationInput, optFns ...func(*lambda.Options)) (*lambda.UpdateFunctionConfigurationOutput, error) {
	if m.UpdateFunctionConfigurationFunc == nil {
		return &lambda.UpdateFunctionConfigurationOutput{}, nil
	}
	return m.UpdateFunctionConfigurationFunc(ctx, params, optFns...)
}

func (m *mockLambdaAPI) AddPermission(ctx context.Context, params *lambda.AddPermissionInput, optFns ...func(*lambda.Options)) (*lambda.AddPermissionOutput, error) {
	if m.AddPermissionFunc == nil {
		return &lambda.AddPermissionOutput{}, nil
	}
	return m.AddPermissionFunc(ctx, params, optFns...)
}

func (m *mockLambdaAPI) RemovePermission(ctx context.Context, params *lambda.RemovePermissionInput, optFns ...func(*lambda.Options)) (*lambda.RemovePermissionOutput, error) {
	m.removedStatements = append(m.removedStatements, *params.StatementId)
	return &lambda.RemovePermissionOutput{}, nil
}

func (m *mockLambdaAPI) DeleteFunction(ctx context.Context, params *lambda.DeleteFunctionInput, optFns ...func(*lambda.Options)) (*lambda.DeleteFunctionOutput, error) {
	m.deletedFunctions = append(m.deletedFunctions, *params.FunctionName)
	return &lambda.DeleteFunctionOutput{}, nil
}
