// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package summarit wires the production capabilities into a ready-to-use
// summarization service.
package summarit

import (
	"context"
	"log/slog"

	"github.com/poiesic/summarit/ai"
	"github.com/poiesic/summarit/ai/openai"
	"github.com/poiesic/summarit/batch"
	"github.com/poiesic/summarit/core"
	"github.com/poiesic/summarit/extract"
	"github.com/poiesic/summarit/loader"
	"github.com/poiesic/summarit/pipeline"
)

type Service struct {
	provider ai.AIProvider
	registry *extract.Registry
	engine   *pipeline.Engine
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig        *ai.Config
	provider        ai.AIProvider
	registryOptions []extract.Option
	pipelineOptions []pipeline.Option
}

// WithAIConfig sets the model endpoints used to build the OpenAI provider.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = config
	}
}

// WithProvider uses provider instead of building one from the AI config.
// The Service takes ownership and closes it.
func WithProvider(provider ai.AIProvider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// WithRegistryOptions appends extractor registry options. They are applied
// after the default loaders, so they can replace them.
func WithRegistryOptions(opts ...extract.Option) ServiceOption {
	return func(o *serviceOptions) {
		o.registryOptions = append(o.registryOptions, opts...)
	}
}

// WithPipelineOptions appends pipeline engine options.
func WithPipelineOptions(opts ...pipeline.Option) ServiceOption {
	return func(o *serviceOptions) {
		o.pipelineOptions = append(o.pipelineOptions, opts...)
	}
}

func NewService(opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	pdf, err := loader.NewPDFLoader()
	if err != nil {
		provider.Close()
		return nil, err
	}
	web, err := loader.NewWebLoader()
	if err != nil {
		provider.Close()
		return nil, err
	}
	youtube, err := loader.NewYouTube()
	if err != nil {
		provider.Close()
		return nil, err
	}

	registryOpts := append([]extract.Option{
		extract.WithPDFFetcher(pdf),
		extract.WithWebFetcher(web),
		extract.WithVideoSource(youtube),
		extract.WithTranscriber(provider.Transcriber()),
	}, options.registryOptions...)
	registry, err := extract.NewRegistry(registryOpts...)
	if err != nil {
		provider.Close()
		return nil, err
	}

	engine, err := pipeline.New(registry, provider.Generator(), options.pipelineOptions...)
	if err != nil {
		provider.Close()
		return nil, err
	}

	return &Service{
		provider: provider,
		registry: registry,
		engine:   engine,
		logger:   slog.Default(),
	}, nil
}

// Summarize runs one input through the pipeline.
func (s *Service) Summarize(ctx context.Context, inputType core.InputType, content string) (*core.State, error) {
	return s.engine.Run(ctx, core.NewState(inputType, content))
}

func (s *Service) Engine() *pipeline.Engine {
	return s.engine
}

func (s *Service) Registry() *extract.Registry {
	return s.registry
}

func (s *Service) NewBatchRunner(opts ...batch.Option) (*batch.Runner, error) {
	return batch.NewRunner(s.engine, opts...)
}

func (s *Service) Close() error {
	if err := s.engine.Close(); err != nil {
		s.logger.Error("error closing pipeline", "err", err)
	}
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
		return err
	}
	return nil
}
