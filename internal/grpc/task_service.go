package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"

	"taskAssignment/models"
)

const (
	TaskServiceName = "tasks.v1.TaskService"

	methodListTasks    = "/" + TaskServiceName + "/ListTasks"
	methodCreateTask   = "/" + TaskServiceName + "/CreateTask"
	methodListTeachers = "/" + TaskServiceName + "/ListTeachers"
)

type ListTasksResponse struct {
	Tasks []models.Task `json:"tasks"`
}

type CreateTaskRequest struct {
	Description string `json:"description"`
	Date        string `json:"date"`
	TeacherID   int64  `json:"teacher_id"`
}

type CreateTaskResponse struct {
	TaskID int64 `json:"task_id"`
}

type ListTeachersResponse struct {
	Teachers []models.Teacher `json:"teachers"`
}

// TaskServiceServer is the server API for tasks.v1.TaskService.
type TaskServiceServer interface {
	ListTasks(context.Context, *emptypb.Empty) (*ListTasksResponse, error)
	CreateTask(context.Context, *CreateTaskRequest) (*CreateTaskResponse, error)
	ListTeachers(context.Context, *emptypb.Empty) (*ListTeachersResponse, error)
}

// unary adapts a typed method to grpc's method handler shape, running the
// server's interceptor chain when one is installed.
func unary[Req, Resp any](fullMethod string, call func(TaskServiceServer, context.Context, *Req) (*Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		s := srv.(TaskServiceServer)
		if interceptor == nil {
			return call(s, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(s, ctx, req.(*Req))
		})
	}
}

var taskServiceDesc = grpc.ServiceDesc{
	ServiceName: TaskServiceName,
	HandlerType: (*TaskServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListTasks", Handler: unary(methodListTasks, TaskServiceServer.ListTasks)},
		{MethodName: "CreateTask", Handler: unary(methodCreateTask, TaskServiceServer.CreateTask)},
		{MethodName: "ListTeachers", Handler: unary(methodListTeachers, TaskServiceServer.ListTeachers)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tasks/v1/tasks.proto",
}

// RegisterTaskServiceServer registers srv on s.
func RegisterTaskServiceServer(s grpc.ServiceRegistrar, srv TaskServiceServer) {
	s.RegisterService(&taskServiceDesc, srv)
}

// TaskServiceClient calls tasks.v1.TaskService using the JSON codec.
type TaskServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewTaskServiceClient(cc grpc.ClientConnInterface) *TaskServiceClient {
	return &TaskServiceClient{cc: cc}
}

func (c *TaskServiceClient) ListTasks(ctx context.Context, opts ...grpc.CallOption) (*ListTasksResponse, error) {
	out := new(ListTasksResponse)
	if err := c.cc.Invoke(ctx, methodListTasks, &emptypb.Empty{}, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TaskServiceClient) CreateTask(ctx context.Context, in *CreateTaskRequest, opts ...grpc.CallOption) (*CreateTaskResponse, error) {
	out := new(CreateTaskResponse)
	if err := c.cc.Invoke(ctx, methodCreateTask, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TaskServiceClient) ListTeachers(ctx context.Context, opts ...grpc.CallOption) (*ListTeachersResponse, error) {
	out := new(ListTeachersResponse)
	if err := c.cc.Invoke(ctx, methodListTeachers, &emptypb.Empty{}, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}
