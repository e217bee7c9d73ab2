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


// Package loader provides the production capabilities behind the extract
// package: a PDF page reader, a web page and feed fetcher, and a YouTube
// subtitle source.
//
// Each loader takes functional options and logs through slog with a
// "component" attribute. None of them keep state between calls, so a single
// instance can serve concurrent pipeline runs.
package loader
