/*
go-peoplecount counts people entering and leaving a monitored zone in a video
stream.  Persons are located with a MobileNet SSD detector every SkipFrames
frames and followed in between by lightweight OpenCV trackers.  Each tracked
box is assigned a stable identity by a centroid tracker and the centroid
history of every identity is classified once as an In or Out crossing.

The core identity and crossing logic lives in the tracker and counter
subpackages which have no dependency on OpenCV.  This package ties them to
GoCV video capture, DNN inference, tracking and rendering through Runner.

See example code and usage in the example subdirectory.
*/
package peoplecount
