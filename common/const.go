// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

const (
	// App 应用程序名称
	App = "respb"

	// Version 应用程序版本
	Version = "v0.0.1"

	// ReadWriteBlockSize 每条连接单次 Read 的缓冲区长度
	//
	// 单条命令可能超过该长度 (value 上限为 4GiB) 读循环会跨多次 Read 拼接
	// 因此这里只需要一个`折中的` buffersize 而不必按最大命令长度预分配
	ReadWriteBlockSize = 4096
)
