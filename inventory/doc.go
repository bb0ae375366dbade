// Copyright 2026 Ian Lewis
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

// Package inventory implements reading and writing Sphinx objects.inv files.
//
// An objects.inv file comes in two parts:
//  1. A plain text header of exactly four lines, each terminated by a single
//     LF byte: the format version line, the project name, the project
//     version and a free-text line noting the compression.
//  2. The body: UTF-8 text with one entry per line, compressed as a zlib
//     stream. The compressed bytes follow the fourth LF immediately.
//
// The Reader splits the header from the body regardless of how the
// underlying reads are chunked and decompresses the body as it is read. The
// Writer emits the header uncompressed and compresses everything written
// after it.
package inventory
