package rules

// All rules are registered via init() functions in their respective files.
// This file exists to document the full set in one place.
//
// Signature rules:
//   - KA0001: Default Params - kernel parameters must not declare defaults
//   - KA0002: VarArgs - kernels must not declare *args
//   - KA0003: KwArgs - kernels must not declare **kwargs
//
// Typing rules:
//   - KA0004: Annotation - parameters need a permitted type annotation
//   - KA0005: Field Match - annotations must match the registered field type
//
// Naming rules:
//   - KA0006: Model Suffix - Model fields never carry _in/_out
//   - KA0007: Data Suffix - Data-like names must carry _in or _out
//
// Ordering rules:
//   - KA0008: Param Order - Model, then Data, then Data in, then Data out
//
// Comment rules:
//   - KA0009: Section Comments - parameter groups carry marker comments
//
// Mutation rules:
//   - KA0010: ReadOnly Write - never write to Model or Data-in parameters
