// Package openapi provides automatic OpenAPI v3.1.0 specification
// generation from mux router routes using Go reflection and struct
// tags.
//
// The package targets the OpenAPI Specification v3.1.0 and uses JSON
// Schema Draft 2020-12 for schema generation. It produces a complete
// OpenAPI document from registered routes with zero external schema
// files. Type resolution is handled by the introspect package; this
// package assembles its output into a serializable document.
//
// See: https://spec.openapis.org/oas/v3.1.0
// See: https://json-schema.org/draft/2020-12/json-schema-core
// See: https://json-schema.org/draft/2020-12/json-schema-validation
//
// # Spec Builder
//
// Create a spec, attach metadata to routes, and build the document:
//
//	spec := openapi.NewSpec(openapi.Info{Title: "My API", Version: "1.0.0"})
//
// Use Op to annotate existing named routes:
//
//	r := mux.NewRouter()
//	r.HandleFunc("/users", listUsers).Methods(http.MethodGet).Name("listUsers")
//	r.HandleFunc("/users", createUser).Methods(http.MethodPost).Name("createUser")
//
//	spec.Op("listUsers").
//	    Summary("List all users").
//	    Tags("users").
//	    Response(http.StatusOK, []User{})
//
//	spec.Op("createUser").
//	    Summary("Create a user").
//	    Tags("users").
//	    Request(CreateUserInput{}).
//	    Response(http.StatusCreated, User{})
//
// Use Route to attach metadata to an already-configured mux route:
//
//	spec.Route(r.HandleFunc("/users", createUser).Methods(http.MethodPost)).
//	    Summary("Create a user").
//	    Tags("users").
//	    Request(CreateUserInput{}).
//	    Response(http.StatusCreated, User{})
//
// # Route Groups
//
// Use Group to apply shared OpenAPI metadata defaults to a logical
// group of operations. Groups are a metadata concept only -- they do
// not affect routing. Routes created through a group inherit the
// group's tags, security, servers, parameters, responses, and external
// docs.
//
//	users := spec.Group().
//	    Tags("users").
//	    Security(openapi.SecurityRequirement{"basic": {}}).
//	    Response(http.StatusForbidden, ErrorResponse{}).
//	    Response(http.StatusNotFound, ErrorResponse{})
//
//	users.Route(r.HandleFunc("/users", listUsers).Methods(http.MethodGet)).
//	    Summary("List users").
//	    Response(http.StatusOK, []User{})
//
// Override/merge semantics per field:
//
//   - Tags: append (group tags + operation tags combined)
//   - Security: replace (operation-level Security call overrides group value)
//   - Deprecated: one-way latch (group deprecation cannot be undone per-operation)
//   - Servers: append (group servers + operation servers combined)
//   - Parameters: append (group parameters + operation parameters combined)
//   - Responses: merge (operation overrides per status code)
//   - ExternalDocs: replace (operation-level ExternalDocs call overrides group value)
//
// # Security
//
// Register security schemes and apply them at document or operation
// level:
//
//	spec.AddSecurityScheme("bearerAuth", &openapi.SecurityScheme{
//	    Type:         "http",
//	    Scheme:       "bearer",
//	    BearerFormat: "JWT",
//	})
//	spec.SetSecurity(openapi.SecurityRequirement{"bearerAuth": {}})
//
// Override security per operation (empty Security() marks an endpoint
// as public):
//
//	spec.Route(r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)).
//	    Summary("Health check").
//	    Security()
//
// # Tags
//
// Tags used in operations are automatically collected into the
// document-level tags list, sorted alphabetically. Use AddTag to
// provide descriptions and external documentation for tags. User-defined
// tags take precedence over auto-collected tags; tags defined via
// AddTag but not used by any operation are still included.
//
// # Struct Tags
//
// Use the "openapi" struct tag to enrich JSON Schema output:
//
//	type CreateUserInput struct {
//	    Name  string `json:"name" openapi:"description=User name,minLength=1,maxLength=100"`
//	    Email string `json:"email" openapi:"format=email"`
//	    Age   int    `json:"age,omitempty" openapi:"minimum=0,maximum=150"`
//	    Role  string `json:"role" openapi:"enum=admin|user|guest"`
//	}
//
// Supported tag keys: description, example, format, minimum, maximum,
// multipleOf, minLength, maxLength, pattern, enum (pipe-separated),
// deprecated, readOnly, writeOnly, required.
//
// # Path Parameter Typing
//
// Mux route macros are automatically mapped to OpenAPI types:
//
//	{id:uuid}   -> type: string, format: uuid
//	{page:int}  -> type: integer
//	{v:float}   -> type: number
//	{d:date}    -> type: string, format: date
//
// # JSON Schema Generation
//
// Go types are converted to JSON Schema via reflection:
//
//   - bool -> {type: "boolean"}
//   - int/uint variants -> {type: "integer"}
//   - float32/float64 -> {type: "number"}
//   - string -> {type: "string"}
//   - []byte -> {type: "string", format: "byte"}
//   - time.Time -> {type: "string", format: "date-time"}
//   - *T -> nullable type using type arrays (e.g., ["string", "null"])
//   - []T -> {type: "array", items: schema(T)}
//   - map[string]V -> {type: "object", additionalProperties: schema(V)}
//   - struct -> {type: "object", properties: {...}, required: [...]}
//
// Named struct types are deduplicated into
// #/components/schemas/{TypeName} and referenced via $ref. Recursive
// and mutually recursive types are handled with cycle-breaking
// references. See the introspect package for the full resolution
// contract, including Enumer, Exampler, custom type registration, and
// generic instantiation naming.
//
// # Custom Types
//
// Types the engine cannot resolve on its own (driver handles, opaque
// identifiers) can be registered with an explicit schema shape:
//
//	spec.RegisterCustomType(AccountID{}, introspect.CustomType{
//	    Kind:   introspect.KindString,
//	    Format: "account-id",
//	})
//
// Registrations persist across Build calls.
//
// # Diagnostics
//
// Build reports nested schema failures as errors. Two softer classes of
// problem are recorded instead of failing the build: schemas whose
// simple names collide (their output names are disambiguated) and root
// body types the engine could not classify at all (they degrade to an
// empty object schema). Inspect both after a build:
//
//	doc, err := spec.Build(r)
//	for _, c := range spec.Conflicts() { ... }
//	for _, f := range spec.Failures() { ... }
//
// Or serve them over HTTP via HandleConfig.DebugFilename.
//
// # Serving the Specification
//
// Handle registers all OpenAPI endpoints under a base path. The config
// parameter is optional -- pass nil for defaults:
//
//	spec.Handle(r, "/swagger", nil)
//
// This registers three routes:
//
//	/swagger/            - interactive HTML docs
//	/swagger/schema.json - OpenAPI spec as JSON
//	/swagger/schema.yaml - OpenAPI spec as YAML
//
// Both /swagger and /swagger/ serve the docs UI. All handlers build the
// document once on first request using sync.Once. Choose the docs UI
// via HandleConfig: DocsSwaggerUI (default), DocsRapiDoc, or DocsRedoc.
//
// # Building the Document
//
// Build walks the mux router and assembles a complete *Document. This
// is called automatically by Handle, but can be used directly:
//
//	doc, err := spec.Build(r)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, _ := json.MarshalIndent(doc, "", "  ")
package openapi
