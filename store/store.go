package store

// 注意：此包只包含实现，接口定义在 core 包。
// 使用 core.Store 接口存取序列化的模型参数（如 learn.LinearModel）。
//
// 示例：
//   var s core.Store = NewMemoryStore()
//   model.SaveTo(ctx, s, "model:ltr:v1")
