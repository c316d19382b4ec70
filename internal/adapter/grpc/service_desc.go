package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// InventoryServiceName is the fully qualified gRPC service name
const InventoryServiceName = "inventory.v1.InventoryService"

// Full method names
const (
	InventoryService_SubmitItem_FullMethodName   = "/" + InventoryServiceName + "/SubmitItem"
	InventoryService_ListItems_FullMethodName    = "/" + InventoryServiceName + "/ListItems"
	InventoryService_GetTotals_FullMethodName    = "/" + InventoryServiceName + "/GetTotals"
	InventoryService_ListProducts_FullMethodName = "/" + InventoryServiceName + "/ListProducts"
)

// InventoryServiceServer is the server API for the inventory service
// Payloads are google.protobuf.Struct documents with snake_case keys
type InventoryServiceServer interface {
	SubmitItem(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListItems(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetTotals(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	ListProducts(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// RegisterInventoryServiceServer registers srv on s
func RegisterInventoryServiceServer(s grpc.ServiceRegistrar, srv InventoryServiceServer) {
	s.RegisterService(&InventoryService_ServiceDesc, srv)
}

// InventoryService_ServiceDesc describes the inventory service for grpc.ServiceRegistrar
var InventoryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: InventoryServiceName,
	HandlerType: (*InventoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SubmitItem",
			Handler: unaryHandler(InventoryService_SubmitItem_FullMethodName, newStruct,
				InventoryServiceServer.SubmitItem),
		},
		{
			MethodName: "ListItems",
			Handler: unaryHandler(InventoryService_ListItems_FullMethodName, newEmpty,
				InventoryServiceServer.ListItems),
		},
		{
			MethodName: "GetTotals",
			Handler: unaryHandler(InventoryService_GetTotals_FullMethodName, newEmpty,
				InventoryServiceServer.GetTotals),
		},
		{
			MethodName: "ListProducts",
			Handler: unaryHandler(InventoryService_ListProducts_FullMethodName, newEmpty,
				InventoryServiceServer.ListProducts),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "inventory/v1/inventory.proto",
}

func newStruct() *structpb.Struct { return new(structpb.Struct) }

func newEmpty() *emptypb.Empty { return new(emptypb.Empty) }

// unaryHandler builds the decode-then-intercept handler generated code would emit for one method
func unaryHandler[Req proto.Message](
	fullMethod string,
	newReq func() Req,
	call func(InventoryServiceServer, context.Context, Req) (*structpb.Struct, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(InventoryServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(InventoryServiceServer), ctx, req.(Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// InventoryServiceClient is the client API for the inventory service
type InventoryServiceClient interface {
	SubmitItem(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListItems(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetTotals(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListProducts(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type inventoryServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewInventoryServiceClient creates a client over cc
func NewInventoryServiceClient(cc grpc.ClientConnInterface) InventoryServiceClient {
	return &inventoryServiceClient{cc}
}

func (c *inventoryServiceClient) SubmitItem(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, InventoryService_SubmitItem_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *inventoryServiceClient) ListItems(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, InventoryService_ListItems_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *inventoryServiceClient) GetTotals(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, InventoryService_GetTotals_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *inventoryServiceClient) ListProducts(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, InventoryService_ListProducts_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
